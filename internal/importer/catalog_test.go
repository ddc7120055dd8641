package importer

import "testing"

func TestFieldCatalog(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			fields := FieldCatalog(kind)
			if len(fields) == 0 {
				t.Fatal("empty catalog")
			}

			seen := map[string]bool{}
			for _, f := range fields {
				if f.Table == "" || f.Field == "" || f.Label == "" {
					t.Errorf("incomplete entry %+v", f)
				}
				key := f.Table + "." + f.Field
				if seen[key] {
					t.Errorf("duplicate entry %s", key)
				}
				seen[key] = true
			}
		})
	}

	if got := FieldCatalog(Kind("droni")); got != nil {
		t.Errorf("unknown kind catalog = %v, want nil", got)
	}
}

// Every synonym target must exist in the kind's catalog, so a suggested
// mapping always points at an importable field.
func TestSynonymsTargetCatalogFields(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			known := map[string]bool{}
			for _, f := range FieldCatalog(kind) {
				known[f.Field] = true
			}
			for _, syn := range synonymsFor(kind) {
				if !known[syn.field] {
					t.Errorf("synonym %q targets unknown field %q", syn.key, syn.field)
				}
			}
		})
	}
}

func TestCatalogByTable(t *testing.T) {
	byTable := CatalogByTable(KindMembers)
	if byTable["members"]["registration_number"] != "Matricola" {
		t.Errorf("members.registration_number label = %q", byTable["members"]["registration_number"])
	}
	if _, ok := byTable["member_employment"]; !ok {
		t.Error("member_employment table missing")
	}
}
