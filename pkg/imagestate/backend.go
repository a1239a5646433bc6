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
	"yunion.io/x/jsonutils"

	api "yunion.io/x/glancestate/pkg/apis/image"
)

// Backend is the capability the reconcilers need from the image catalog
// service. glance.SGlanceClient is the production implementation.
type Backend interface {
	// ImageList returns the images matching name. The name argument is a
	// server-side filter hint; callers still filter exact matches.
	ImageList(name string) ([]api.SImage, error)
	ImageShow(id string) (*api.SImage, error)
	ImageCreate(params *jsonutils.JSONDict) (*api.SImage, error)
	ImageUpdate(id string, params *jsonutils.JSONDict) (*api.SImage, error)

	TaskCreate(taskType string, input *jsonutils.JSONDict) (*api.STask, error)
	// TaskList returns all tasks keyed by task id.
	TaskList() (map[string]api.STask, error)
}
