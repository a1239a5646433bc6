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

package image

import (
	"yunion.io/x/jsonutils"
)

// SImage is the observed state of a catalog image. Id is assigned by the
// backend and immutable. Checksum is only populated once the image is
// active.
type SImage struct {
	Id              string
	Name            string
	Status          string
	Visibility      string
	Protected       bool
	Checksum        string
	Owner           string
	Size            int64
	DiskFormat      string `json:"disk_format"`
	ContainerFormat string `json:"container_format"`
	Tags            []string
}

func (img *SImage) IsActive() bool {
	return img.Status == IMAGE_STATUS_ACTIVE
}

// STask is the observed state of an asynchronous backend task. Input is an
// opaque echo of the request. A task is terminal once its status is success
// or failure; anything else means still running.
type STask struct {
	Id      string
	Type    string
	Status  string
	Owner   string
	Message string
	Input   jsonutils.JSONObject
	Result  jsonutils.JSONObject
}

func (task *STask) IsTerminal() bool {
	return task.Status == TASK_STATUS_SUCCESS || task.Status == TASK_STATUS_FAILURE
}
