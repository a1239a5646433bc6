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
	"fmt"

	api "yunion.io/x/glancestate/pkg/apis/image"
)

// findImage resolves a name to at most one image. Outcomes:
//   - (img, msg, nil): exactly one match
//   - (nil, msg, nil): no match, not an error
//   - (nil, "", ErrMoreThanOne): ambiguous, callers must not act
//   - (nil, "", err): the underlying query failed (classified by the
//     backend as an identity or catalog rejection)
func (rec *SReconciler) findImage(name string) (*api.SImage, string, error) {
	images, err := rec.backend.ImageList(name)
	if err != nil {
		return nil, "", err
	}
	matches := make([]*api.SImage, 0, 1)
	for i := range images {
		if images[i].Name == name {
			matches = append(matches, &images[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Sprintf("No image with name %q", name), nil
	case 1:
		return matches[0], fmt.Sprintf("Found image %s", name), nil
	default:
		return nil, "", ErrMoreThanOne
	}
}
