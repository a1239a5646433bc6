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

const ServiceTypeGlance = "glance"

type SImageManager struct {
	modulebase.BaseManager
}

// NewImageManager builds an image resource manager against a specific
// glance API version prefix ("v1" or "v2").
func NewImageManager(version string) SImageManager {
	return SImageManager{
		BaseManager: modulebase.NewBaseManager(ServiceTypeGlance, version,
			[]string{"id", "name", "status", "visibility", "protected", "checksum", "owner", "disk_format", "container_format"}),
	}
}

func (man *SImageManager) List(session *mcclient.ClientSession, query *jsonutils.JSONDict) (*modulebase.ListResult, error) {
	path := "/images"
	if query != nil {
		path = fmt.Sprintf("%s?%s", path, query.QueryString())
	}
	return man.BaseList(session, path, "images")
}

func (man *SImageManager) Get(session *mcclient.ClientSession, id string) (jsonutils.JSONObject, error) {
	return man.BaseGet(session, fmt.Sprintf("/images/%s", url.PathEscape(id)), "image")
}

func (man *SImageManager) Create(session *mcclient.ClientSession, params jsonutils.JSONObject) (jsonutils.JSONObject, error) {
	return man.BasePost(session, "/images", params, "image")
}

func (man *SImageManager) Update(session *mcclient.ClientSession, id string, params jsonutils.JSONObject) (jsonutils.JSONObject, error) {
	return man.BasePut(session, fmt.Sprintf("/images/%s", url.PathEscape(id)), params, "image")
}
