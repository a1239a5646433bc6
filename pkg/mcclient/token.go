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
	"time"

	"yunion.io/x/pkg/errors"
)

const (
	AUTH_TOKEN = "X-Auth-Token"

	ENDPOINT_TYPE_INTERNAL = "internal"
	ENDPOINT_TYPE_PUBLIC   = "public"
	ENDPOINT_TYPE_ADMIN    = "admin"
)

const ErrServiceNotFound = errors.Error("service not found in catalog")

type TokenCredential interface {
	GetTokenString() string
	GetTenantId() string
	GetTenantName() string
	GetUserName() string
	GetExpires() time.Time
	IsValid() bool
	GetServiceURL(service, region, endpointType string) (string, error)
}

type SEndpointV2 struct {
	Id          string `json:"id"`
	Region      string `json:"region"`
	PublicURL   string `json:"publicURL"`
	InternalURL string `json:"internalURL"`
	AdminURL    string `json:"adminURL"`
}

type SCatalogEntryV2 struct {
	Name      string        `json:"name"`
	Type      string        `json:"type"`
	Endpoints []SEndpointV2 `json:"endpoints"`
}

type STokenV2 struct {
	Id      string    `json:"id"`
	Expires time.Time `json:"expires"`
	Tenant  struct {
		Id   string `json:"id"`
		Name string `json:"name"`
	} `json:"tenant"`
}

type SUserV2 struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// TokenCredentialV2 is a scoped keystone v2.0 token together with the
// service catalog returned by the identity service.
type TokenCredentialV2 struct {
	Token          STokenV2          `json:"token"`
	ServiceCatalog []SCatalogEntryV2 `json:"serviceCatalog"`
	User           SUserV2           `json:"user"`
}

func (token *TokenCredentialV2) GetTokenString() string {
	return token.Token.Id
}

func (token *TokenCredentialV2) GetTenantId() string {
	return token.Token.Tenant.Id
}

func (token *TokenCredentialV2) GetTenantName() string {
	return token.Token.Tenant.Name
}

func (token *TokenCredentialV2) GetUserName() string {
	return token.User.Name
}

func (token *TokenCredentialV2) GetExpires() time.Time {
	return token.Token.Expires
}

func (token *TokenCredentialV2) IsValid() bool {
	return len(token.Token.Id) > 0 && token.Token.Expires.After(time.Now())
}

func (entry *SCatalogEntryV2) getEndpoint(region string) *SEndpointV2 {
	for i := range entry.Endpoints {
		if len(region) == 0 || entry.Endpoints[i].Region == region {
			return &entry.Endpoints[i]
		}
	}
	return nil
}

func (token *TokenCredentialV2) GetServiceURL(service, region, endpointType string) (string, error) {
	for i := range token.ServiceCatalog {
		entry := &token.ServiceCatalog[i]
		if entry.Name != service && entry.Type != service {
			continue
		}
		ep := entry.getEndpoint(region)
		if ep == nil {
			continue
		}
		switch endpointType {
		case ENDPOINT_TYPE_PUBLIC:
			return ep.PublicURL, nil
		case ENDPOINT_TYPE_ADMIN:
			return ep.AdminURL, nil
		default:
			return ep.InternalURL, nil
		}
	}
	return "", errors.Wrapf(ErrServiceNotFound, "service %s region %q", service, region)
}

// SSimpleToken carries a pre-shared admin token. There is no catalog behind
// it, so endpoints must be supplied explicitly by the session.
type SSimpleToken struct {
	Token string
}

func (token *SSimpleToken) GetTokenString() string {
	return token.Token
}

func (token *SSimpleToken) GetTenantId() string {
	return ""
}

func (token *SSimpleToken) GetTenantName() string {
	return ""
}

func (token *SSimpleToken) GetUserName() string {
	return ""
}

func (token *SSimpleToken) GetExpires() time.Time {
	return time.Time{}
}

func (token *SSimpleToken) IsValid() bool {
	return len(token.Token) > 0
}

func (token *SSimpleToken) GetServiceURL(service, region, endpointType string) (string, error) {
	return "", errors.Wrapf(ErrServiceNotFound, "admin token carries no catalog for service %s", service)
}
