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

package modules

import (
	"fmt"
	"net/url"

	"yunion.io/x/jsonutils"

	"yunion.io/x/glancestate/pkg/mcclient"
	"yunion.io/x/glancestate/pkg/mcclient/modulebase"
)

// STaskManager drives the asynchronous task API, available with glance v2
// only.
type STaskManager struct {
	modulebase.BaseManager
}

func NewTaskManager() STaskManager {
	return STaskManager{
		BaseManager: modulebase.NewBaseManager(ServiceTypeGlance, "v2",
			[]string{"id", "type", "status", "owner", "created_at", "updated_at"}),
	}
}

func (man *STaskManager) List(session *mcclient.ClientSession) (*modulebase.ListResult, error) {
	return man.BaseList(session, "/tasks", "tasks")
}

func (man *STaskManager) Get(session *mcclient.ClientSession, id string) (jsonutils.JSONObject, error) {
	return man.BaseGet(session, fmt.Sprintf("/tasks/%s", url.PathEscape(id)), "task")
}

func (man *STaskManager) Create(session *mcclient.ClientSession, taskType string, input jsonutils.JSONObject) (jsonutils.JSONObject, error) {
	params := jsonutils.NewDict()
	params.Add(jsonutils.NewString(taskType), "type")
	if input != nil {
		params.Add(input, "input")
	}
	return man.BasePost(session, "/tasks", params, "task")
}

type SSchemaManager struct {
	modulebase.BaseManager
}

func NewSchemaManager() SSchemaManager {
	return SSchemaManager{
		BaseManager: modulebase.NewBaseManager(ServiceTypeGlance, "v2", nil),
	}
}

func (man *SSchemaManager) Get(session *mcclient.ClientSession, name string) (jsonutils.JSONObject, error) {
	return man.BaseGet(session, fmt.Sprintf("/schemas/%s", url.PathEscape(name)), "")
}
