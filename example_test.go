package tracefield_test

import (
	"fmt"
	"strings"

	"github.com/gostdlib/base/context"

	"github.com/bearlytools/tracefield"
	"github.com/bearlytools/tracefield/internal/payload"
	"github.com/bearlytools/tracefield/mapping"
)

func ExampleDecoder_Record() {
	ctx := context.Background()

	reg := mapping.NewRegistry()
	err := reg.LoadYAML(strings.NewReader(`
schemas:
  - provider: WinINet
    name: Request
    id: 105
    version: 1
    fields:
      - {name: Id, type: int64}
      - {name: Uri, type: unicodestring}
      - {name: Success, type: bool}
`))
	if err != nil {
		panic(err)
	}

	dec, err := tracefield.New(ctx, reg)
	if err != nil {
		panic(err)
	}

	ev := tracefield.Event{
		Provider: "WinINet",
		ID:       105,
		Version:  1,
		Payload:  (&payload.Builder{}).Int64(42).UnicodeString("http://x").Bool(true).Bytes(),
	}
	rec, err := dec.Record(ctx, ev)
	if err != nil {
		panic(err)
	}

	b, err := rec.MarshalJSON()
	if err != nil {
		panic(err)
	}
	fmt.Println(string(b))
	// Output:
	// {"schema":"WinINet/Request@v1","version":1,"fields":{"Id":42,"Uri":"http://x","Success":true}}
}
