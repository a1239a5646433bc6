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

const (
	IMAGE_STATUS_QUEUED = "queued"
	IMAGE_STATUS_SAVING = "saving"
	IMAGE_STATUS_ACTIVE = "active"

	IMAGE_VISIBILITY_PUBLIC    = "public"
	IMAGE_VISIBILITY_PRIVATE   = "private"
	IMAGE_VISIBILITY_SHARED    = "shared"
	IMAGE_VISIBILITY_COMMUNITY = "community"

	TASK_STATUS_PENDING    = "pending"
	TASK_STATUS_PROCESSING = "processing"
	TASK_STATUS_SUCCESS    = "success"
	TASK_STATUS_FAILURE    = "failure"

	TASK_TYPE_IMPORT = "import"
)

var (
	// ImageStatusOrder is the normal lifecycle progression of an image.
	// An acceptable-state floor is a suffix of this list.
	ImageStatusOrder = []string{
		IMAGE_STATUS_QUEUED,
		IMAGE_STATUS_SAVING,
		IMAGE_STATUS_ACTIVE,
	}

	Visibilities = []string{
		IMAGE_VISIBILITY_PUBLIC,
		IMAGE_VISIBILITY_PRIVATE,
		IMAGE_VISIBILITY_SHARED,
		IMAGE_VISIBILITY_COMMUNITY,
	}

	ContainerFormats = []string{"ami", "ari", "aki", "bare", "ovf"}

	DiskFormats = []string{"ami", "ari", "aki", "vhd", "vmdk", "raw", "qcow2", "vdi", "iso"}

	TaskTypes = []string{TASK_TYPE_IMPORT}
)
