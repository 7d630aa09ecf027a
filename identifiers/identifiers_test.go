package identifiers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

const testSystem = "https://test.example.com/Id/widget"

func init() {
	Register("Widget", testSystem)
	Register("Unvalidated", "https://test.example.com/Id/unvalidated")
	RegisterValidator(testSystem, func(ctx context.Context, value string) (string, error) {
		v := strings.ToUpper(strings.TrimSpace(value))
		if len(v) != 4 {
			return "", fmt.Errorf("'%s': not a widget identifier", value)
		}
		return v, nil
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	v, err := Validate(ctx, testSystem, " abcd ")
	if err != nil {
		t.Fatalf("failed to validate: %v", err)
	}
	if v != "ABCD" {
		t.Errorf("expected sanitised value ABCD, got: %s", v)
	}
	if _, err = Validate(ctx, testSystem, "toolong"); err == nil {
		t.Error("invalid value reported as valid")
	}
}

func TestUnknownSystem(t *testing.T) {
	_, err := Validate(context.Background(), "https://test.example.com/Id/nonexistent", "abcd")
	if !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got: %v", err)
	}
}

func TestNoValidator(t *testing.T) {
	_, err := Validate(context.Background(), "https://test.example.com/Id/unvalidated", "abcd")
	if !errors.Is(err, ErrNoValidator) {
		t.Errorf("expected ErrNoValidator, got: %v", err)
	}
}

func TestLookupSystem(t *testing.T) {
	if _, ok := LookupSystem(testSystem); !ok {
		t.Error("failed to look up system by URI")
	}
	system, ok := LookupSystem("widget")
	if !ok {
		t.Fatal("failed to look up system by name")
	}
	if system.URI != testSystem {
		t.Errorf("wrong system: %v", system)
	}
	if _, ok = LookupSystem("nonexistent"); ok {
		t.Error("lookup of unregistered system succeeded")
	}
}

func TestListSystems(t *testing.T) {
	all := ListSystems()
	if len(all) < 2 {
		t.Fatalf("expected at least two registered systems, got: %v", all)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].URI >= all[i].URI {
			t.Errorf("systems not ordered by URI: %s before %s", all[i-1].URI, all[i].URI)
		}
	}
}
