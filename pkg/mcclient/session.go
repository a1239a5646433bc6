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

package mcclient

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/util/httputils"
)

type ClientSession struct {
	ctx context.Context

	client       *Client
	token        TokenCredential
	region       string
	endpointType string

	customServiceUrl map[string]string
}

func (session *ClientSession) GetClient() *Client {
	return session.client
}

func (session *ClientSession) GetToken() TokenCredential {
	return session.token
}

func (session *ClientSession) GetRegion() string {
	return session.region
}

// SetServiceUrl overrides the catalog endpoint for a service. Required for
// admin-token sessions, which carry no catalog.
func (session *ClientSession) SetServiceUrl(service, url string) {
	session.customServiceUrl[service] = url
}

var versionRegexp = regexp.MustCompile(`^v\d+\.?\d*$`)

// SplitVersionedURL separates a trailing API version segment from a base
// URL, e.g. http://host:9292/v2 => (http://host:9292, v2). Endpoints
// registered in a catalog often carry such a suffix, which would otherwise
// yield request paths like /v2/v1/images.
func SplitVersionedURL(url string) (string, string) {
	endidx := len(url) - 1
	for ; endidx >= 0 && url[endidx] == '/'; endidx-- {
	}
	lastslash := strings.LastIndexByte(url[0:endidx+1], '/')
	if lastslash >= 0 {
		last := url[lastslash+1 : endidx+1]
		if strings.EqualFold(last, "latest") {
			return url[0:lastslash], ""
		}
		if versionRegexp.MatchString(last) {
			return url[0:lastslash], last
		}
	}
	return url[0 : endidx+1], ""
}

// GetServiceURL resolves the base URL for a service, with any versioned
// path suffix normalized away.
func (session *ClientSession) GetServiceURL(service string) (string, error) {
	url, ok := session.customServiceUrl[service]
	if !ok {
		var err error
		url, err = session.token.GetServiceURL(service, session.region, session.endpointType)
		if err != nil {
			return "", err
		}
	}
	base, _ := SplitVersionedURL(url)
	return strings.TrimSuffix(base, "/"), nil
}

func (session *ClientSession) JSONRequest(service string, method httputils.THttpMethod, path string, header http.Header, body jsonutils.JSONObject) (http.Header, jsonutils.JSONObject, error) {
	baseUrl, err := session.GetServiceURL(service)
	if err != nil {
		return nil, nil, err
	}
	return session.client.jsonRequest(session.ctx, baseUrl, session.token.GetTokenString(), method, path, header, body)
}
