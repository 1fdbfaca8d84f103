package mapping

import (
	"errors"
	"sync"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/bearlytools/tracefield/field"
)

func requestSchema(version uint8, extra ...FieldDescr) *Schema {
	fields := []FieldDescr{
		{Name: "Id", Type: field.FTInt64},
		{Name: "Uri", Type: field.FTUnicodeString},
	}
	fields = append(fields, extra...)
	return MustNew("WinINet", "Request", 105, version, fields...)
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	v1 := requestSchema(1)
	v3 := requestSchema(3, FieldDescr{Name: "Success", Type: field.FTBool})
	v2 := requestSchema(2, FieldDescr{Name: "Status", Type: field.FTUint32})
	r.MustRegister(v3, v1, v2)

	if diff := pretty.Compare([]uint8{1, 2, 3}, r.Versions("WinINet", 105)); diff != "" {
		t.Errorf("TestRegistryLookup(Versions): -want/+got:\n%s", diff)
	}
	if r.Len() != 3 {
		t.Errorf("TestRegistryLookup(Len): got %d, want 3", r.Len())
	}

	tests := []struct {
		desc     string
		provider string
		id       uint16
		version  uint8
		want     *Schema
		err      bool
	}{
		{desc: "exact v1", provider: "WinINet", id: 105, version: 1, want: v1},
		{desc: "exact v2", provider: "WinINet", id: 105, version: 2, want: v2},
		{desc: "exact v3", provider: "WinINet", id: 105, version: 3, want: v3},
		{desc: "newer emitter falls back to newest known", provider: "WinINet", id: 105, version: 9, want: v3},
		{desc: "older than anything registered", provider: "WinINet", id: 105, version: 0, err: true},
		{desc: "unknown id", provider: "WinINet", id: 106, version: 1, err: true},
		{desc: "unknown provider", provider: "Kernel", id: 105, version: 1, err: true},
	}

	for _, test := range tests {
		got, err := r.Lookup(test.provider, test.id, test.version)
		switch {
		case err == nil && test.err:
			t.Errorf("TestRegistryLookup(%s): got err == nil, want err != nil", test.desc)
			continue
		case err != nil && !test.err:
			t.Errorf("TestRegistryLookup(%s): got err == %s, want err == nil", test.desc, err)
			continue
		case err != nil:
			if !errors.Is(err, ErrUnknownSchema) {
				t.Errorf("TestRegistryLookup(%s): got err == %s, want ErrUnknownSchema", test.desc, err)
			}
			continue
		}
		if got != test.want {
			t.Errorf("TestRegistryLookup(%s): got %s, want %s", test.desc, got, test.want)
		}
	}
}

func TestRegistryRegisterErrors(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister(requestSchema(1))

	if err := r.Register(requestSchema(1)); err == nil {
		t.Errorf("TestRegistryRegisterErrors(duplicate): got err == nil, want err != nil")
	}
	if err := r.Register(nil); err == nil {
		t.Errorf("TestRegistryRegisterErrors(nil): got err == nil, want err != nil")
	}
	if err := r.Register(&Schema{}); err == nil {
		t.Errorf("TestRegistryRegisterErrors(invalid): got err == nil, want err != nil")
	}
	if r.Len() != 1 {
		t.Errorf("TestRegistryRegisterErrors: got Len() %d, want 1", r.Len())
	}
}

func TestRegistryConcurrentRegister(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v uint8) {
			defer wg.Done()
			if err := r.Register(requestSchema(v)); err != nil {
				t.Errorf("TestRegistryConcurrentRegister: Register(v%d) got err == %s", v, err)
			}
			if _, err := r.Lookup("WinINet", 105, v); err != nil {
				t.Errorf("TestRegistryConcurrentRegister: Lookup(v%d) got err == %s", v, err)
			}
		}(uint8(i + 1))
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("TestRegistryConcurrentRegister: got Len() %d, want 50", r.Len())
	}
}
