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
	"strings"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/errors"
	"yunion.io/x/pkg/tristate"
	"yunion.io/x/pkg/utils"

	api "yunion.io/x/glancestate/pkg/apis/image"
)

const (
	DefaultDiskFormat      = "raw"
	DefaultContainerFormat = "bare"
)

// SImageSpec is the desired state of one image. Name is the lookup key.
// Zero values mean "do not enforce" for visibility and checksum; Protected
// is tri-state for the same reason.
type SImageSpec struct {
	Name       string
	Visibility string
	Protected  tristate.TriState
	Checksum   string

	// Location is the URL the backend copies or imports the image data
	// from. Import requires an http(s) scheme.
	Location         string
	DiskFormat       string
	ContainerFormat  string
	Tags             []string
	ImportFromFormat string

	// WaitFor is the acceptable-state floor a direct create polls for.
	// Empty means derive it: active when a checksum is to be verified,
	// saving otherwise.
	WaitFor string
}

func (spec *SImageSpec) diskFormat() string {
	if len(spec.DiskFormat) == 0 {
		return DefaultDiskFormat
	}
	return spec.DiskFormat
}

func (spec *SImageSpec) containerFormat() string {
	if len(spec.ContainerFormat) == 0 {
		return DefaultContainerFormat
	}
	return spec.ContainerFormat
}

func (spec *SImageSpec) importFromFormat() string {
	if len(spec.ImportFromFormat) == 0 {
		return DefaultDiskFormat
	}
	return spec.ImportFromFormat
}

// Validate checks the enumerated attributes. Violations are configuration
// errors and the only condition under which a reconciler returns a Go
// error.
func (spec *SImageSpec) Validate() error {
	if len(spec.Name) == 0 {
		return errors.Wrap(ErrInvalidParams, "image name is required")
	}
	if len(spec.Visibility) > 0 && !utils.IsInStringArray(spec.Visibility, api.Visibilities) {
		return errors.Wrapf(ErrInvalidParams, `"visibility" needs to be one of the following: %s`,
			strings.Join(api.Visibilities, ", "))
	}
	if !utils.IsInStringArray(spec.containerFormat(), api.ContainerFormats) {
		return errors.Wrapf(ErrInvalidParams, `"container_format" needs to be one of the following: %s`,
			strings.Join(api.ContainerFormats, ", "))
	}
	if !utils.IsInStringArray(spec.diskFormat(), api.DiskFormats) {
		return errors.Wrapf(ErrInvalidParams, `"disk_format" needs to be one of the following: %s`,
			strings.Join(api.DiskFormats, ", "))
	}
	if len(spec.WaitFor) > 0 && !utils.IsInStringArray(spec.WaitFor, api.ImageStatusOrder) {
		return errors.Wrapf(ErrInvalidParams, `"wait_for" needs to be one of the following: %s`,
			strings.Join(api.ImageStatusOrder, ", "))
	}
	return nil
}

// ValidateImport checks the additional requirements of an import task:
// a remote http(s) source and a valid source format.
func (spec *SImageSpec) ValidateImport() error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if len(spec.Location) == 0 {
		return errors.Wrap(ErrInvalidParams, "missing the following task parameters for the 'import' task: import_from")
	}
	if !strings.HasPrefix(spec.Location, "http://") && !strings.HasPrefix(spec.Location, "https://") {
		return errors.Wrap(ErrInvalidParams, "only non-local sources of image data are supported")
	}
	if !utils.IsInStringArray(spec.importFromFormat(), api.DiskFormats) {
		return errors.Wrapf(ErrInvalidParams, `"import_from_format" needs to be one of the following: %s`,
			strings.Join(api.DiskFormats, ", "))
	}
	return nil
}

// acceptableStates derives the suffix of the ordered status progression the
// creation poll accepts: the explicit floor if given, otherwise active when
// a checksum will be verified and saving when not.
func (spec *SImageSpec) acceptableStates() []string {
	waitFor := spec.WaitFor
	if len(waitFor) == 0 {
		if len(spec.Checksum) > 0 {
			waitFor = api.IMAGE_STATUS_ACTIVE
		} else {
			waitFor = api.IMAGE_STATUS_SAVING
		}
	}
	for i := range api.ImageStatusOrder {
		if api.ImageStatusOrder[i] == waitFor {
			return api.ImageStatusOrder[i:]
		}
	}
	return api.ImageStatusOrder[len(api.ImageStatusOrder)-1:]
}

// createParams is the body of a direct image create call.
func (spec *SImageSpec) createParams() *jsonutils.JSONDict {
	params := jsonutils.NewDict()
	params.Add(jsonutils.NewString(spec.Name), "name")
	params.Add(jsonutils.NewString(spec.Location), "location")
	params.Add(jsonutils.NewString(spec.diskFormat()), "disk_format")
	if len(spec.Visibility) > 0 {
		params.Add(jsonutils.NewString(spec.Visibility), "visibility")
	}
	if !spec.Protected.IsNone() {
		params.Add(jsonutils.NewBool(spec.Protected.Bool()), "protected")
	}
	return params
}

// taskInput embeds the desired image attributes into the input of an
// import task.
func (spec *SImageSpec) taskInput() *jsonutils.JSONDict {
	properties := jsonutils.NewDict()
	properties.Add(jsonutils.NewString(spec.Name), "name")
	properties.Add(jsonutils.NewString(spec.containerFormat()), "container_format")
	properties.Add(jsonutils.NewString(spec.diskFormat()), "disk_format")
	properties.Add(jsonutils.NewBool(spec.Protected.Bool()), "protected")
	properties.Add(jsonutils.NewStringArray(spec.Tags), "tags")
	visibility := spec.Visibility
	if len(visibility) == 0 {
		visibility = api.IMAGE_VISIBILITY_PUBLIC
	}
	properties.Add(jsonutils.NewString(visibility), "visibility")

	input := jsonutils.NewDict()
	input.Add(jsonutils.NewString(spec.Location), "import_from")
	input.Add(jsonutils.NewString(spec.importFromFormat()), "import_from_format")
	input.Add(properties, "image_properties")
	return input
}
