// Copyright 2019 Yunion
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package imagestate

import (
	"time"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/errors"

	api "yunion.io/x/glancestate/pkg/apis/image"
)

type fakeBackend struct {
	listFn       func(call int) ([]api.SImage, error)
	showFn       func(id string) (*api.SImage, error)
	createFn     func(params *jsonutils.JSONDict) (*api.SImage, error)
	updateFn     func(id string, params *jsonutils.JSONDict) (*api.SImage, error)
	taskCreateFn func(taskType string, input *jsonutils.JSONDict) (*api.STask, error)
	taskListFn   func(call int) (map[string]api.STask, error)

	listCalls       int
	showCalls       int
	createCalls     int
	updateCalls     int
	taskCreateCalls int
	taskListCalls   int
}

const errFakeUnsupported = errors.Error("fake backend: operation not scripted")

func (fake *fakeBackend) ImageList(name string) ([]api.SImage, error) {
	fake.listCalls++
	if fake.listFn == nil {
		return nil, errFakeUnsupported
	}
	return fake.listFn(fake.listCalls)
}

func (fake *fakeBackend) ImageShow(id string) (*api.SImage, error) {
	fake.showCalls++
	if fake.showFn == nil {
		return nil, errFakeUnsupported
	}
	return fake.showFn(id)
}

func (fake *fakeBackend) ImageCreate(params *jsonutils.JSONDict) (*api.SImage, error) {
	fake.createCalls++
	if fake.createFn == nil {
		return nil, errFakeUnsupported
	}
	return fake.createFn(params)
}

func (fake *fakeBackend) ImageUpdate(id string, params *jsonutils.JSONDict) (*api.SImage, error) {
	fake.updateCalls++
	if fake.updateFn == nil {
		return nil, errFakeUnsupported
	}
	return fake.updateFn(id, params)
}

func (fake *fakeBackend) TaskCreate(taskType string, input *jsonutils.JSONDict) (*api.STask, error) {
	fake.taskCreateCalls++
	if fake.taskCreateFn == nil {
		return nil, errFakeUnsupported
	}
	return fake.taskCreateFn(taskType, input)
}

func (fake *fakeBackend) TaskList() (map[string]api.STask, error) {
	fake.taskListCalls++
	if fake.taskListFn == nil {
		return nil, errFakeUnsupported
	}
	return fake.taskListFn(fake.taskListCalls)
}

func staticImages(images ...api.SImage) func(int) ([]api.SImage, error) {
	return func(int) ([]api.SImage, error) {
		return images, nil
	}
}

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Sleep(d time.Duration) {
	clock.now = clock.now.Add(d)
}

func newTestReconciler(backend Backend) *SReconciler {
	return NewReconciler(backend).SetClock(&fakeClock{now: time.Unix(0, 0)})
}

func changesMap(ret *SResult) map[string]jsonutils.JSONObject {
	changes, _ := ret.Changes.GetMap()
	return changes
}
