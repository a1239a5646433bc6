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
	"yunion.io/x/pkg/tristate"
	"yunion.io/x/pkg/util/printutils"
	"yunion.io/x/pkg/util/shellutils"

	"yunion.io/x/glancestate/pkg/imagestate"
)

type stateOptions struct {
	NAME            string   `help:"Name of the image"`
	Location        string   `help:"URL to copy or import the image data from"`
	Visibility      string   `help:"Desired visibility of the image" choices:"public|private|shared|community"`
	Protected       string   `help:"Desired protection of the image" choices:"true|false"`
	Checksum        string   `help:"Expected MD5 checksum of the image data"`
	DiskFormat      string   `help:"Disk format" choices:"ami|ari|aki|vhd|vmdk|raw|qcow2|vdi|iso"`
	ContainerFormat string   `help:"Container format" choices:"ami|ari|aki|bare|ovf"`
	Tag             []string `help:"Tags of the image"`
}

func (opts *stateOptions) toSpec() *imagestate.SImageSpec {
	spec := &imagestate.SImageSpec{
		Name:            opts.NAME,
		Location:        opts.Location,
		Visibility:      opts.Visibility,
		Checksum:        opts.Checksum,
		DiskFormat:      opts.DiskFormat,
		ContainerFormat: opts.ContainerFormat,
		Tags:            opts.Tag,
	}
	switch opts.Protected {
	case "true":
		spec.Protected = tristate.True
	case "false":
		spec.Protected = tristate.False
	}
	return spec
}

func init() {
	type ImagePresentOptions struct {
		stateOptions
		WaitFor string `help:"Lowest status to accept when waiting for the image" choices:"queued|saving|active"`
	}
	shellutils.R(&ImagePresentOptions{}, "image-present", "Converge an image to its declared state", func(env *SEnv, args *ImagePresentOptions) error {
		spec := args.toSpec()
		spec.WaitFor = args.WaitFor
		ret, err := env.Reconciler.ImagePresent(spec)
		if err != nil {
			return err
		}
		printutils.PrintJSONObject(ret.ToJSON())
		return nil
	})

	type ImageImportOptions struct {
		stateOptions
		ImportFromFormat string `help:"Format of the imported image data" choices:"ami|ari|aki|vhd|vmdk|raw|qcow2|vdi|iso"`
	}
	shellutils.R(&ImageImportOptions{}, "image-import", "Converge an image through an asynchronous import task", func(env *SEnv, args *ImageImportOptions) error {
		spec := args.toSpec()
		spec.ImportFromFormat = args.ImportFromFormat
		ret, err := env.Reconciler.ImageImport(spec)
		if err != nil {
			return err
		}
		printutils.PrintJSONObject(ret.ToJSON())
		return nil
	})
}
