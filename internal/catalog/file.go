package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// fileData is the on-disk shape of a catalog override:
//
//	products:
//	  - name: Sony WH-1000XM5
//	    url: https://www.amazon.com/s?k=Sony+WH-1000XM5
//	responses:
//	  - key: bass
//	    text: For bass lovers, ...
//	default: I'd love to help! ...
//
// Sections left out fall back to the built-in data.
type fileData struct {
	Products  []Product `yaml:"products"`
	Responses []Topic   `yaml:"responses"`
	Default   string    `yaml:"default"`
}

// Load returns the built-in data when path is empty, otherwise the data in
// the YAML file at path merged over the built-ins section by section.
func Load(path string) (*Catalog, *Responses, error) {
	products, responses := Defaults()
	if path == "" {
		return products, responses, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return parse(raw, products, responses)
}

func parse(raw []byte, products *Catalog, responses *Responses) (*Catalog, *Responses, error) {
	var fd fileData
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	var err error
	if len(fd.Products) > 0 {
		if products, err = NewCatalog(fd.Products); err != nil {
			return nil, nil, fmt.Errorf("catalog products: %w", err)
		}
	}

	if len(fd.Responses) > 0 || fd.Default != "" {
		topics := responses.Topics()
		if len(fd.Responses) > 0 {
			topics = fd.Responses
		}
		fallback := responses.Default()
		if fd.Default != "" {
			fallback = fd.Default
		}
		if responses, err = NewResponses(topics, fallback); err != nil {
			return nil, nil, fmt.Errorf("catalog responses: %w", err)
		}
	}

	return products, responses, nil
}
