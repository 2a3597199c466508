// FILE: lixenwraith/appconfig/schema.go
package appconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclSchemaFile is the top-level structure of a schema file for decoding.
//
//	parameter "doggyz" {
//	  required = true
//	}
//
//	parameter "api_key" {
//	  lock = "on_set"
//	}
type hclSchemaFile struct {
	Parameters []*hclParameter `hcl:"parameter,block"`
}

type hclParameter struct {
	Name     string  `hcl:"name,label"`
	Required *bool   `hcl:"required,optional"`
	Lock     *string `hcl:"lock,optional"`
}

// DeclareFromHCL declares the parameters listed in an HCL schema file, in file
// order. Files ending in .json are read with the HCL JSON syntax.
func (c *Container) DeclareFromHCL(path string) error {
	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(path), ".json") {
		file, diags = parser.ParseJSONFile(path)
	} else {
		file, diags = parser.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return fmt.Errorf("%w: failed to parse %s: %s", ErrSchema, path, diags.Error())
	}
	return c.declareHCLBody(file.Body, path)
}

// DeclareFromHCLBytes is DeclareFromHCL for in-memory native HCL source.
// filename is only used in diagnostics.
func (c *Container) DeclareFromHCLBytes(src []byte, filename string) error {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("%w: failed to parse %s: %s", ErrSchema, filename, diags.Error())
	}
	return c.declareHCLBody(file.Body, filename)
}

func (c *Container) declareHCLBody(body hcl.Body, filename string) error {
	var schema hclSchemaFile
	if diags := gohcl.DecodeBody(body, nil, &schema); diags.HasErrors() {
		return fmt.Errorf("%w: failed to decode %s: %s", ErrSchema, filename, diags.Error())
	}

	for _, p := range schema.Parameters {
		var opts []ParameterOption
		if p.Required != nil {
			opts = append(opts, WithRequired(*p.Required))
		}
		if p.Lock != nil {
			opts = append(opts, Lock(LockPolicy(*p.Lock)))
		}
		if err := c.Parameter(p.Name, opts...); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	return nil
}
