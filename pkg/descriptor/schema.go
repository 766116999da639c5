package descriptor

import (
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"
)

// Schema returns the JSON schema of the GameObject JSON form.
func Schema() ([]byte, error) {
	schema, err := jsonschema.Reflect(&GameObject{}).MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "failed to build game object schema")
	}
	return schema, nil
}

// Diff returns the JSON patch that turns a into b. Names are ignored so that the same object
// read from two files compares equal.
func Diff(a, b *GameObject) (jsondiff.Patch, error) {
	src, err := marshalUnnamed(a)
	if err != nil {
		return nil, err
	}
	dst, err := marshalUnnamed(b)
	if err != nil {
		return nil, err
	}
	patch, err := jsondiff.CompareJSON(src, dst)
	if err != nil {
		return nil, eris.Wrap(err, "failed to compare game objects")
	}
	return patch, nil
}

func marshalUnnamed(g *GameObject) ([]byte, error) {
	unnamed := *g
	unnamed.Name = ""
	bz, err := json.Marshal(&unnamed)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode game object")
	}
	return bz, nil
}
