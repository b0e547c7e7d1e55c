package manifest

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// manifestSchema is the closed CUE shape of a turmite.toml file. Unknown
// keys and wrong-typed values fail validation before the struct decode
// would silently drop them.
const manifestSchema = `
close({
	program?: close({
		path?:   string
		source?: string
	})
	input?: close({
		text?:  string
		path?:  string
		bytes?: [...int & >=0 & <=255]
	})
	limits?: close({
		steps?: int & >=0
		cells?: int & >=0
	})
	trace?: close({
		output?: string
		store?:  string
	})
})
`

// validate checks the generically-decoded manifest against the schema.
func validate(raw map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(manifestSchema)
	if err := schema.Err(); err != nil {
		return err
	}

	value := ctx.Encode(raw)
	if err := value.Err(); err != nil {
		return err
	}

	return schema.Unify(value).Validate(cue.Concrete(true))
}
