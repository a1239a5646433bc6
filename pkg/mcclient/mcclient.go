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
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/errors"
	"yunion.io/x/pkg/util/httputils"
)

const ErrEmptyToken = errors.Error("empty token in auth response")

type Client struct {
	authUrl string
	timeout int
	debug   bool

	httpconn *http.Client
}

func NewClient(authUrl string, timeout int, debug bool, insecure bool) *Client {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure},
		DialContext: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext,
		IdleConnTimeout:     5 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		authUrl: authUrl,
		timeout: timeout,
		debug:   debug,
		httpconn: &http.Client{
			Transport: tr,
		},
	}
}

func (client *Client) SetDebug(debug bool) {
	client.debug = debug
}

func (client *Client) AuthUrl() string {
	return client.authUrl
}

func getDefaultHeader(header http.Header, token string) http.Header {
	if len(token) > 0 {
		if header == nil {
			header = http.Header{}
		}
		if len(header.Get(AUTH_TOKEN)) == 0 {
			header.Add(AUTH_TOKEN, token)
		}
	}
	return header
}

func (client *Client) jsonRequest(ctx context.Context, endpoint string, token string, method httputils.THttpMethod, url string, header http.Header, body jsonutils.JSONObject) (http.Header, jsonutils.JSONObject, error) {
	return httputils.JSONRequest(client.httpconn, ctx, method, endpoint+url, getDefaultHeader(header, token), body, client.debug)
}

// httpErrorCode walks the cause chain to the first JSONClientError and
// returns its status code, or -1. JSONClientError has a Cause() of its own,
// so errors.Cause would unwrap past it.
func httpErrorCode(err error) int {
	for err != nil {
		if je, ok := err.(*httputils.JSONClientError); ok {
			return je.Code
		}
		wrapper, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = wrapper.Cause()
	}
	return -1
}

// IsUnauthorized reports whether err is an HTTP 401 from a remote service.
func IsUnauthorized(err error) bool {
	return httpErrorCode(err) == 401
}

// IsNotFound reports whether err is an HTTP 404 from a remote service.
func IsNotFound(err error) bool {
	return httpErrorCode(err) == 404
}

// AuthenticateV2 obtains a scoped token from the keystone v2.0 tokens API.
// An unauthorized response is classified as an identity-service failure so
// operators can tell which credential was rejected.
func (client *Client) AuthenticateV2(ctx context.Context, user, password, tenant, tenantId string) (TokenCredential, error) {
	creds := jsonutils.NewDict()
	creds.Add(jsonutils.NewString(user), "username")
	creds.Add(jsonutils.NewString(password), "password")
	auth := jsonutils.NewDict()
	auth.Add(creds, "passwordCredentials")
	if len(tenantId) > 0 {
		auth.Add(jsonutils.NewString(tenantId), "tenantId")
	} else if len(tenant) > 0 {
		auth.Add(jsonutils.NewString(tenant), "tenantName")
	}
	input := jsonutils.NewDict()
	input.Add(auth, "auth")

	_, body, err := client.jsonRequest(ctx, client.authUrl, "", "POST", "/tokens", nil, input)
	if err != nil {
		if IsUnauthorized(err) {
			return nil, errors.Wrap(err, "keystone: Unauthorized")
		}
		return nil, errors.Wrap(err, "keystone authenticate")
	}
	token := TokenCredentialV2{}
	err = body.Unmarshal(&token, "access")
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal access")
	}
	if len(token.Token.Id) == 0 {
		return nil, ErrEmptyToken
	}
	return &token, nil
}

func (client *Client) NewSession(ctx context.Context, token TokenCredential, region, endpointType string) *ClientSession {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ClientSession{
		ctx:              ctx,
		client:           client,
		token:            token,
		region:           region,
		endpointType:     endpointType,
		customServiceUrl: make(map[string]string),
	}
}
