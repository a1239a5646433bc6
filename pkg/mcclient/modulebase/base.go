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

package modulebase

import (
	"fmt"
	"net/http"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/util/httputils"

	"yunion.io/x/glancestate/pkg/mcclient"
)

type BaseManager struct {
	serviceType string
	version     string

	columns []string
}

func NewBaseManager(serviceType, version string, columns []string) BaseManager {
	return BaseManager{
		serviceType: serviceType,
		version:     version,
		columns:     columns,
	}
}

func (man *BaseManager) GetColumns() []string {
	return man.columns
}

func (man *BaseManager) versionedURL(path string) string {
	offset := 0
	for ; offset < len(path) && path[offset] == '/'; offset++ {
	}
	if len(man.version) > 0 {
		return fmt.Sprintf("/%s/%s", man.version, path[offset:])
	}
	return fmt.Sprintf("/%s", path[offset:])
}

func (man *BaseManager) jsonRequest(session *mcclient.ClientSession,
	method httputils.THttpMethod, path string,
	header http.Header, body jsonutils.JSONObject) (http.Header, jsonutils.JSONObject, error) {
	return session.JSONRequest(man.serviceType, method, man.versionedURL(path), header, body)
}

type ListResult struct {
	Data   []jsonutils.JSONObject
	Total  int
	Limit  int
	Offset int
}

// BaseList normalizes the two response shapes catalog services produce: a
// dict keyed by respKey, or a bare array.
func (man *BaseManager) BaseList(session *mcclient.ClientSession, path, respKey string) (*ListResult, error) {
	_, body, err := man.jsonRequest(session, "GET", path, nil, nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("empty response")
	}
	rets, err := body.GetArray(respKey)
	if err != nil {
		rets, err = body.GetArray()
		if err != nil {
			return nil, err
		}
	}
	total, _ := body.Int("total")
	limit, _ := body.Int("limit")
	offset, _ := body.Int("offset")
	if total == 0 {
		total = int64(len(rets))
	}
	return &ListResult{
		Data:  rets,
		Total: int(total), Limit: int(limit), Offset: int(offset),
	}, nil
}

func unwrapBody(body jsonutils.JSONObject, respKey string) jsonutils.JSONObject {
	if len(respKey) == 0 || body == nil {
		return body
	}
	ret, err := body.Get(respKey)
	if err != nil {
		return body
	}
	return ret
}

func (man *BaseManager) BaseGet(session *mcclient.ClientSession, path, respKey string) (jsonutils.JSONObject, error) {
	_, body, err := man.jsonRequest(session, "GET", path, nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapBody(body, respKey), nil
}

func (man *BaseManager) BasePost(session *mcclient.ClientSession, path string, body jsonutils.JSONObject, respKey string) (jsonutils.JSONObject, error) {
	_, ret, err := man.jsonRequest(session, "POST", path, nil, body)
	if err != nil {
		return nil, err
	}
	return unwrapBody(ret, respKey), nil
}

func (man *BaseManager) BasePut(session *mcclient.ClientSession, path string, body jsonutils.JSONObject, respKey string) (jsonutils.JSONObject, error) {
	_, ret, err := man.jsonRequest(session, "PUT", path, nil, body)
	if err != nil {
		return nil, err
	}
	return unwrapBody(ret, respKey), nil
}
