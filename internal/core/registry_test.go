package core

import "testing"

func TestRegisterAndGet(t *testing.T) {
	def := TableDefinition{
		Info: TableInfo{Key: "registry_test_table", Label: "Registry Test"},
		FieldSpecs: []FieldSpec{
			{Name: "id"},
			{Name: "value", Required: true},
		},
	}
	Register(def)

	got, ok := Get("registry_test_table")
	if !ok {
		t.Fatal("registered table not found")
	}

	// Columns are derived from FieldSpecs when not set explicitly
	if len(got.Info.Columns) != 2 || got.Info.Columns[0] != "id" || got.Info.Columns[1] != "value" {
		t.Errorf("Columns = %v, want [id value]", got.Info.Columns)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()

	def := TableDefinition{Info: TableInfo{Key: "registry_dup_table"}}
	Register(def)
	Register(def)
}

func TestAllRootFirst(t *testing.T) {
	Register(TableDefinition{Info: TableInfo{Key: "zzz_root_table"}})
	Register(TableDefinition{Info: TableInfo{Key: "aaa_child_table", ParentRef: "farmer_id"}})

	all := All()
	if len(all) < 2 {
		t.Fatal("expected at least two tables")
	}

	// Every root table must sort before every child table
	sawChild := false
	for _, def := range all {
		if def.HasParent() {
			sawChild = true
		} else if sawChild {
			t.Fatalf("root table %s appears after a child table", def.Info.Key)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, ok := Get("no_such_table"); ok {
		t.Error("Get on unknown key must return false")
	}
}
