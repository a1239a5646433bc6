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
	"yunion.io/x/log"
	"yunion.io/x/pkg/errors"
	"yunion.io/x/pkg/tristate"
	"yunion.io/x/pkg/utils"

	api "yunion.io/x/glancestate/pkg/apis/image"
	"yunion.io/x/glancestate/pkg/util/waitutils"
)

// ImagePresent converges a directly uploaded image to its declared state.
// An image goes through queued and saving before becoming active; the
// creation poll stops once the acceptable-state floor is reached. The
// checksum attribute can only be verified once the image is active.
//
// Only validation failures surface as a Go error; every other condition is
// captured in the returned SResult.
func (rec *SReconciler) ImagePresent(spec *SImageSpec) (*SResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	ret := newResult(spec.Name)
	acceptable := spec.acceptableStates()

	img, msg, err := rec.findImage(spec.Name)
	if err != nil {
		ret.markFailed(rec.test)
		ret.appendCommentf("%s", err.Error())
		return ret, nil
	}
	log.Debugf("%s", msg)

	if img == nil && len(spec.Location) > 0 {
		// No image yet and we know where to get one.
		if rec.test {
			ret.Result = tristate.None
			ret.appendCommentf("image_present would create an image from %s", spec.Location)
			return ret, nil
		}
		img, err = rec.backend.ImageCreate(spec.createParams())
		if err != nil {
			ret.markFailed(rec.test)
			ret.appendCommentf("%s", err.Error())
			return ret, nil
		}
		log.Debugf("created new image %s from %s", img.Id, spec.Location)
		ret.recordCreated("id", img.Id)

		first := true
		werr := waitutils.Wait(rec.clock, rec.interval, rec.timeout, func() (bool, error) {
			if !first {
				nimg, nmsg, err := rec.findImage(spec.Name)
				if err != nil {
					return false, err
				}
				if nimg == nil {
					return false, errors.Wrapf(ErrImageVanished, "Created image %s vanished: %s", spec.Name, nmsg)
				}
				img = nimg
			}
			first = false
			if utils.IsInStringArray(img.Status, acceptable) {
				log.Debugf("image %s has reached status %s", img.Name, img.Status)
				return true, nil
			}
			return false, nil
		})
		if werr == waitutils.ErrTimeout {
			// Not a hard stop: partial progress is still reported below.
			ret.Result = tristate.False
			ret.appendCommentf("Image didn't reach an acceptable state (%s) before timeout: last status was %q",
				strings.Join(acceptable, ", "), img.Status)
		} else if werr != nil {
			ret.Result = tristate.False
			ret.appendCommentf("%s", werr.Error())
			return ret, nil
		}
		ret.setNewAttr("status", jsonutils.NewString(img.Status))
	} else if img == nil {
		// There's no image, but where would we get one?
		if rec.test {
			ret.Result = tristate.None
			ret.appendCommentf("No location to copy image from specified, image_present would not create one")
		} else {
			ret.Result = tristate.False
			ret.appendCommentf("No location to copy image from specified, not creating a new image")
		}
		return ret, nil
	}

	// Attribute checks are independent: a failed check never aborts the
	// remaining ones, all results accumulate in the comment.
	rec.checkVisibility(spec, img, ret)
	rec.checkProtected(spec, img, ret)
	rec.checkChecksum(spec, img, ret)
	log.Debugf("image_present returns %s", ret.ToJSON())
	return ret, nil
}

// checkVisibility issues an update when visibility diverges, then
// re-checks. This is the only attribute the reconciler corrects; a still
// divergent value after the update is a failure.
func (rec *SReconciler) checkVisibility(spec *SImageSpec, img *api.SImage, ret *SResult) {
	if len(spec.Visibility) == 0 {
		return
	}
	if img.Visibility == spec.Visibility {
		ret.appendCommentf(`"visibility" is correct (%s)`, spec.Visibility)
		return
	}
	oldValue := img.Visibility
	if !rec.test {
		params := jsonutils.NewDict()
		params.Add(jsonutils.NewString(spec.Visibility), "visibility")
		nimg, err := rec.backend.ImageUpdate(img.Id, params)
		if err != nil {
			log.Warningf("update visibility of image %s: %s", img.Id, err)
		} else {
			*img = *nimg
		}
	}
	if img.Visibility != spec.Visibility {
		ret.markFailed(rec.test)
		ret.appendCommentf(`"visibility" is %s, should be %s`, img.Visibility, spec.Visibility)
		return
	}
	ret.recordChange("visibility", jsonutils.NewString(oldValue), jsonutils.NewString(spec.Visibility))
}

// checkProtected is report-only: no corrective action is ever issued for
// this attribute.
func (rec *SReconciler) checkProtected(spec *SImageSpec, img *api.SImage, ret *SResult) {
	if spec.Protected.IsNone() {
		return
	}
	if img.Protected != spec.Protected.Bool() {
		ret.markFailed(rec.test)
		ret.appendCommentf(`"protected" is %v, should be %v`, img.Protected, spec.Protected.Bool())
	} else {
		ret.appendCommentf(`"protected" is correct (%v)`, spec.Protected.Bool())
	}
}

// checkChecksum verifies the checksum once the image is active. A
// not-yet-active image is informational only, never a failure. On an
// active image with no checksum attribute the full record is re-fetched
// once before giving up.
func (rec *SReconciler) checkChecksum(spec *SImageSpec, img *api.SImage, ret *SResult) {
	if len(spec.Checksum) == 0 || len(img.Status) == 0 {
		return
	}
	switch img.Status {
	case api.IMAGE_STATUS_ACTIVE:
		if len(img.Checksum) == 0 {
			nimg, err := rec.backend.ImageShow(img.Id)
			if err != nil {
				log.Warningf("refresh image %s: %s", img.Id, err)
			} else if nimg != nil {
				*img = *nimg
			}
		}
		if len(img.Checksum) == 0 {
			ret.markFailed(rec.test)
			ret.appendCommentf("No checksum available for this image: image has status %q", img.Status)
		} else if img.Checksum != spec.Checksum {
			ret.markFailed(rec.test)
			ret.appendCommentf(`"checksum" is %s, should be %s`, img.Checksum, spec.Checksum)
		} else {
			ret.appendCommentf(`"checksum" is correct (%s)`, spec.Checksum)
		}
	case api.IMAGE_STATUS_SAVING, api.IMAGE_STATUS_QUEUED:
		ret.appendCommentf(`Checksum won't be verified as image hasn't reached "status=active" yet`)
	}
}
