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
	"testing"
)

func TestSplitVersionedURL(t *testing.T) {
	cases := []struct {
		in      string
		base    string
		version string
	}{
		{"http://127.0.0.1:9292/v2", "http://127.0.0.1:9292", "v2"},
		{"http://127.0.0.1:9292/v2/", "http://127.0.0.1:9292", "v2"},
		{"http://127.0.0.1:9292/v2.0", "http://127.0.0.1:9292", "v2.0"},
		{"http://127.0.0.1:9292/latest", "http://127.0.0.1:9292", ""},
		{"http://127.0.0.1:9292", "http://127.0.0.1:9292", ""},
		{"http://127.0.0.1:9292/image", "http://127.0.0.1:9292/image", ""},
	}
	for _, c := range cases {
		base, version := SplitVersionedURL(c.in)
		if base != c.base || version != c.version {
			t.Errorf("SplitVersionedURL(%q) = (%q, %q), want (%q, %q)",
				c.in, base, version, c.base, c.version)
		}
	}
}

func TestGetServiceURLOverride(t *testing.T) {
	client := NewClient(DefaultAuthUrl, 30, false, false)
	session := client.NewSession(nil, &SSimpleToken{Token: "t"}, "", ENDPOINT_TYPE_INTERNAL)

	_, err := session.GetServiceURL("glance")
	if err == nil {
		t.Fatalf("admin token session without override should fail endpoint lookup")
	}

	session.SetServiceUrl("glance", "http://127.0.0.1:9292/v2/")
	url, err := session.GetServiceURL("glance")
	if err != nil {
		t.Fatalf("GetServiceURL: %v", err)
	}
	if url != "http://127.0.0.1:9292" {
		t.Errorf("expect version suffix stripped, got %q", url)
	}
}

func TestTokenCredentialV2ServiceURL(t *testing.T) {
	token := TokenCredentialV2{}
	token.Token.Id = "tok"
	token.ServiceCatalog = []SCatalogEntryV2{
		{
			Name: "glance",
			Type: "image",
			Endpoints: []SEndpointV2{
				{
					Region:      "RegionOne",
					PublicURL:   "http://pub:9292",
					InternalURL: "http://int:9292",
					AdminURL:    "http://adm:9292",
				},
			},
		},
	}
	url, err := token.GetServiceURL("glance", "RegionOne", ENDPOINT_TYPE_INTERNAL)
	if err != nil {
		t.Fatalf("GetServiceURL: %v", err)
	}
	if url != "http://int:9292" {
		t.Errorf("expect internal url, got %q", url)
	}
	url, err = token.GetServiceURL("image", "", ENDPOINT_TYPE_PUBLIC)
	if err != nil {
		t.Fatalf("GetServiceURL by type: %v", err)
	}
	if url != "http://pub:9292" {
		t.Errorf("expect public url, got %q", url)
	}
	_, err = token.GetServiceURL("nova", "", ENDPOINT_TYPE_INTERNAL)
	if err == nil {
		t.Errorf("expect lookup failure for unknown service")
	}
}
