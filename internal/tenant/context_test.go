package tenant

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestCurrentID(t *testing.T) {
	if _, ok := CurrentID(context.Background()); ok {
		t.Error("expected no tenant on a bare context")
	}

	if _, ok := CurrentID(WithID(context.Background(), "")); ok {
		t.Error("expected empty identifier to count as unbound")
	}

	id, ok := CurrentID(WithID(context.Background(), "acme"))
	if !ok || id != "acme" {
		t.Errorf("expected acme, got %q (bound=%v)", id, ok)
	}
}

func TestResolve_UnboundIsBootstrap(t *testing.T) {
	got := Resolve(context.Background())
	if got != Bootstrap {
		t.Errorf("expected bootstrap tenant %s, got %s", Bootstrap, got)
	}
}

func TestResolve_BootstrapMatchesNameDerivedUUID(t *testing.T) {
	// MD5-based (version 3) UUID of the literal "BOOTSTRAP" bytes.
	if want := uuid.MustParse("82cbe14b-7694-3cbd-8fa3-e2523c66b267"); Bootstrap != want {
		t.Errorf("expected bootstrap tenant %s, got %s", want, Bootstrap)
	}
	if Bootstrap.Version() != 3 {
		t.Errorf("expected version 3, got %d", Bootstrap.Version())
	}
	if Bootstrap.Variant() != uuid.RFC4122 {
		t.Errorf("expected RFC4122 variant, got %v", Bootstrap.Variant())
	}
	if ResolveID("BOOTSTRAP") != Bootstrap {
		t.Error("raw BOOTSTRAP label should resolve to the bootstrap tenant")
	}
}

func TestResolve_ParsesUUID(t *testing.T) {
	want := uuid.New()
	got := Resolve(WithID(context.Background(), want.String()))
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolve_LegacyLabelsAreDeterministic(t *testing.T) {
	a := Resolve(WithID(context.Background(), "legacy-tenant"))
	b := ResolveID("legacy-tenant")
	c := ResolveID("other-tenant")

	if a != b {
		t.Errorf("same label resolved to %s and %s", a, b)
	}
	if a == c {
		t.Error("different labels resolved to the same tenant")
	}
	if a == Bootstrap {
		t.Error("legacy label should not resolve to the bootstrap tenant")
	}
}

func TestResolveID_OnlyCanonicalFormParses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "canonical",
			raw:  "01234567-89ab-cdef-0123-456789abcdef",
			want: "01234567-89ab-cdef-0123-456789abcdef",
		},
		{
			name: "canonical upper case",
			raw:  "01234567-89AB-CDEF-0123-456789ABCDEF",
			want: "01234567-89ab-cdef-0123-456789abcdef",
		},
		{
			name: "undashed hex",
			raw:  "0123456789abcdef0123456789abcdef",
			want: "8516ac99-dc60-3032-95de-7bdb6a153530",
		},
		{
			name: "legacy label",
			raw:  "acme",
			want: "53bce4f1-dfa0-3e8e-bca1-26f91b35d3a6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveID(tt.raw); got.String() != tt.want {
				t.Errorf("ResolveID(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolveID_NonCanonicalFormsAreNameDerived(t *testing.T) {
	id := "01234567-89ab-cdef-0123-456789abcdef"

	for _, raw := range []string{
		"{" + id + "}",
		"urn:uuid:" + id,
		"0123456789abcdef0123456789abcdef",
	} {
		got := ResolveID(raw)
		if got.String() == id {
			t.Errorf("%q parsed as a UUID, expected a name-derived tenant", raw)
		}
		if got != nameUUID([]byte(raw)) {
			t.Errorf("%q did not resolve to its name-derived UUID", raw)
		}
	}
}
