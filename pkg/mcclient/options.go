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
	"os"

	"gopkg.in/yaml.v2"

	"yunion.io/x/pkg/errors"
)

const (
	ErrNoCredentials        = errors.Error("no credentials to authenticate with")
	ErrConflictCredentials  = errors.Error("both password and admin token supplied")
	ErrAdminTokenApiVersion = errors.Error("only can use keystone admin token with glance API v1")
	ErrProfileNotFound      = errors.Error("profile not found")
)

const (
	DefaultUser    = "admin"
	DefaultTenant  = "admin"
	DefaultAuthUrl = "http://127.0.0.1:35357/v2.0"
)

// SAuthOptions is one named credential configuration block for a backend
// account.
type SAuthOptions struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Tenant   string `yaml:"tenant"`
	TenantId string `yaml:"tenant_id"`
	AuthUrl  string `yaml:"auth_url"`
	Insecure bool   `yaml:"insecure"`
	Token    string `yaml:"token"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

func (opts *SAuthOptions) fillDefaults() {
	if len(opts.User) == 0 {
		opts.User = DefaultUser
	}
	if len(opts.Tenant) == 0 && len(opts.TenantId) == 0 {
		opts.Tenant = DefaultTenant
	}
	if len(opts.AuthUrl) == 0 {
		opts.AuthUrl = DefaultAuthUrl
	}
}

// Validate checks the credential combination against the requested glance
// API version. At most one of password or admin token may be supplied, and
// the admin token works with API v1 only.
func (opts *SAuthOptions) Validate(apiVersion int) error {
	if len(opts.Password) > 0 && len(opts.Token) > 0 {
		return ErrConflictCredentials
	}
	if len(opts.Token) > 0 {
		if apiVersion != 1 {
			return ErrAdminTokenApiVersion
		}
		if len(opts.Endpoint) == 0 {
			return errors.Wrap(ErrNoCredentials, "admin token requires an explicit endpoint")
		}
		return nil
	}
	if len(opts.Password) > 0 {
		return nil
	}
	return ErrNoCredentials
}

// SProfilesConfig is the on-disk credential configuration: an unprefixed
// default block plus optional named profiles.
type SProfilesConfig struct {
	SAuthOptions `yaml:",inline"`

	Profiles map[string]SAuthOptions `yaml:"profiles"`
}

func LoadProfilesFile(path string) (*SProfilesConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return LoadProfiles(content)
}

func LoadProfiles(content []byte) (*SProfilesConfig, error) {
	config := SProfilesConfig{}
	err := yaml.Unmarshal(content, &config)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal profiles")
	}
	return &config, nil
}

// GetProfile returns the named credential block, or the default block when
// name is empty.
func (config *SProfilesConfig) GetProfile(name string) (*SAuthOptions, error) {
	opts := config.SAuthOptions
	if len(name) > 0 {
		named, ok := config.Profiles[name]
		if !ok {
			return nil, errors.Wrapf(ErrProfileNotFound, "profile %q", name)
		}
		opts = named
	}
	opts.fillDefaults()
	return &opts, nil
}
