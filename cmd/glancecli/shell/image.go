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

package shell

import (
	"fmt"

	"yunion.io/x/jsonutils"
	"yunion.io/x/pkg/util/shellutils"
)

func init() {
	type ImageListOptions struct {
		Name string `help:"Filter images by name"`
	}
	shellutils.R(&ImageListOptions{}, "image-list", "List images", func(env *SEnv, args *ImageListOptions) error {
		images, err := env.Client.ImageList(args.Name)
		if err != nil {
			return err
		}
		printList(images, nil)
		return nil
	})

	type ImageShowOptions struct {
		ID string `help:"ID of the image"`
	}
	shellutils.R(&ImageShowOptions{}, "image-show", "Show details of an image", func(env *SEnv, args *ImageShowOptions) error {
		img, err := env.Client.ImageShow(args.ID)
		if err != nil {
			return err
		}
		printObject(img)
		return nil
	})

	type ImageCreateOptions struct {
		NAME       string `help:"Name of the image"`
		LOCATION   string `help:"URL to copy the image data from"`
		DiskFormat string `help:"Disk format" default:"raw" choices:"ami|ari|aki|vhd|vmdk|raw|qcow2|vdi|iso"`
		Visibility string `help:"Visibility of the image" choices:"public|private|shared|community"`
		Protected  bool   `help:"Protect the image from deletion"`
	}
	shellutils.R(&ImageCreateOptions{}, "image-create", "Create an image from a location", func(env *SEnv, args *ImageCreateOptions) error {
		params := jsonutils.NewDict()
		params.Add(jsonutils.NewString(args.NAME), "name")
		params.Add(jsonutils.NewString(args.LOCATION), "location")
		params.Add(jsonutils.NewString(args.DiskFormat), "disk_format")
		if len(args.Visibility) > 0 {
			params.Add(jsonutils.NewString(args.Visibility), "visibility")
		}
		if args.Protected {
			params.Add(jsonutils.JSONTrue, "protected")
		}
		img, err := env.Client.ImageCreate(params)
		if err != nil {
			return err
		}
		printObject(img)
		return nil
	})

	type ImageUpdateOptions struct {
		ID         string `help:"ID of the image"`
		Name       string `help:"New name of the image"`
		Visibility string `help:"New visibility of the image" choices:"public|private|shared|community"`
	}
	shellutils.R(&ImageUpdateOptions{}, "image-update", "Update attributes of an image", func(env *SEnv, args *ImageUpdateOptions) error {
		params := jsonutils.NewDict()
		if len(args.Name) > 0 {
			params.Add(jsonutils.NewString(args.Name), "name")
		}
		if len(args.Visibility) > 0 {
			params.Add(jsonutils.NewString(args.Visibility), "visibility")
		}
		img, err := env.Client.ImageUpdate(args.ID, params)
		if err != nil {
			return err
		}
		printObject(img)
		return nil
	})

	type ImageOwnerShowOptions struct {
		NAME string `help:"Name of the image"`
	}
	shellutils.R(&ImageOwnerShowOptions{}, "image-owner-show", "Show the owner of the image with the given name", func(env *SEnv, args *ImageOwnerShowOptions) error {
		owner, err := env.Client.GetImageOwnerId(args.NAME)
		if err != nil {
			return err
		}
		fmt.Println(owner)
		return nil
	})
}
