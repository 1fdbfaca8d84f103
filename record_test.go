package tracefield

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bearlytools/tracefield/field"
)

func TestRecordMarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		rec  Record
		want string
	}{
		{
			desc: "empty",
			rec:  Record{Schema: "P/E@v0"},
			want: `{"schema":"P/E@v0","version":0,"fields":{}}`,
		},
		{
			desc: "keeps field order",
			rec: Record{
				Schema:  "P/E@v2",
				Version: 2,
				Fields: []Value{
					{Name: "Z", Type: field.FTUint8, Value: uint8(1)},
					{Name: "A", Type: field.FTInt16, Value: int16(-2)},
				},
			},
			want: `{"schema":"P/E@v2","version":2,"fields":{"Z":1,"A":-2}}`,
		},
		{
			desc: "non scalar values",
			rec: Record{
				Schema:  "P/E@v1",
				Version: 1,
				Fields: []Value{
					{Name: "G", Type: field.FTGUID, Value: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")},
					{Name: "T", Type: field.FTFileTime, Value: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
					{Name: "B", Type: field.FTCountedBinary, Value: []byte{1, 2, 3}},
				},
			},
			want: `{"schema":"P/E@v1","version":1,"fields":{"G":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","T":"2020-01-02T03:04:05Z","B":"AQID"}}`,
		},
		{
			desc: "non finite floats",
			rec: Record{
				Schema: "P/E@v1",
				Fields: []Value{
					{Name: "N", Type: field.FTFloat64, Value: math.NaN()},
					{Name: "I", Type: field.FTFloat32, Value: float32(math.Inf(-1))},
					{Name: "F", Type: field.FTFloat64, Value: 1.5},
				},
			},
			want: `{"schema":"P/E@v1","version":0,"fields":{"N":"NaN","I":"-Inf","F":1.5}}`,
		},
	}

	for _, test := range tests {
		got, err := test.rec.MarshalJSON()
		if err != nil {
			t.Errorf("TestRecordMarshalJSON(%s): got err == %s", test.desc, err)
			continue
		}
		if string(got) != test.want {
			t.Errorf("TestRecordMarshalJSON(%s): got %s, want %s", test.desc, got, test.want)
		}
	}
}
