package dummystore

import (
	"context"
	"testing"

	"github.com/trezcool/classtrack/core"
)

func TestStoreCRUD(t *testing.T) {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	ctx := context.Background()

	// create assigns ids
	res, err := db.Create(ctx, core.StudentsCollection,
		core.Record{core.FieldFirstName: "Amina", core.FieldGradeLevel: "10"},
		core.Record{core.FieldFirstName: "Ben", core.FieldGradeLevel: "11"},
	)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if !res.Success || len(res.Results) != 2 {
		t.Fatalf("Create() = %+v, want 2 results", res)
	}
	id1, _ := res.Results[0].Data.ID()
	id2, _ := res.Results[1].Data.ID()
	if id1 == 0 || id2 == 0 || id1 == id2 {
		t.Fatalf("Create() ids = %d, %d, want distinct non-zero", id1, id2)
	}

	// fetch with a filter
	fres, err := db.Fetch(ctx, core.StudentsCollection, core.RecordQuery{
		Where: []core.Where{core.Equal(core.FieldGradeLevel, "10")},
	})
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if len(fres.Data) != 1 || fres.Data[0].Str(core.FieldFirstName) != "Amina" {
		t.Errorf("Fetch() = %+v, want Amina only", fres.Data)
	}

	// update only overwrites provided fields
	ures, err := db.Update(ctx, core.StudentsCollection, core.Record{
		core.FieldID:         id1,
		core.FieldGradeLevel: "11",
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if !ures.Results[0].Success {
		t.Fatalf("Update() result = %+v", ures.Results[0])
	}
	gres, _ := db.GetByID(ctx, core.StudentsCollection, id1, core.RecordQuery{})
	if gres.Data.Str(core.FieldFirstName) != "Amina" || gres.Data.Str(core.FieldGradeLevel) != "11" {
		t.Errorf("GetByID() after update = %+v, want name kept and grade level changed", gres.Data)
	}

	// missing records report failure on the envelope, not as an error
	mres, err := db.GetByID(ctx, core.StudentsCollection, 999, core.RecordQuery{})
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if mres.Success {
		t.Error("GetByID(999) succeeded, want failure envelope")
	}

	// delete
	dres, err := db.Delete(ctx, core.StudentsCollection, id1, 999)
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if !dres.Results[0].Success || dres.Results[1].Success {
		t.Errorf("Delete() results = %+v, want first ok and second failed", dres.Results)
	}
}

func TestStoreUnknownCollection(t *testing.T) {
	db, _ := Open()
	ctx := context.Background()

	res, err := db.Fetch(ctx, "nope_c", core.RecordQuery{})
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if res.Success || res.Message == "" {
		t.Errorf("Fetch() = %+v, want failure envelope with message", res)
	}
}

func TestStoreForceWriteFailure(t *testing.T) {
	db, _ := Open()
	ctx := context.Background()

	db.ForceWriteFailure = func(collection string, rec core.Record) string {
		if rec.Str(core.FieldFirstName) == "Ben" {
			return "boom"
		}
		return ""
	}

	res, err := db.Create(ctx, core.StudentsCollection,
		core.Record{core.FieldFirstName: "Amina"},
		core.Record{core.FieldFirstName: "Ben"},
	)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if !res.Results[0].Success {
		t.Errorf("results[0] = %+v, want success", res.Results[0])
	}
	if res.Results[1].Success || res.Results[1].Message != "boom" {
		t.Errorf("results[1] = %+v, want forced failure", res.Results[1])
	}

	// the failed record was not persisted
	fres, _ := db.Fetch(ctx, core.StudentsCollection, core.RecordQuery{})
	if len(fres.Data) != 1 {
		t.Errorf("record count = %d, want 1", len(fres.Data))
	}
}

func TestStoreCopiesRecords(t *testing.T) {
	db, _ := Open()
	ctx := context.Background()

	res, _ := db.Create(ctx, core.StudentsCollection, core.Record{core.FieldFirstName: "Amina"})
	id, _ := res.Results[0].Data.ID()

	// mutating a fetched record must not leak into the store
	gres, _ := db.GetByID(ctx, core.StudentsCollection, id, core.RecordQuery{})
	gres.Data[core.FieldFirstName] = "Mutated"

	gres2, _ := db.GetByID(ctx, core.StudentsCollection, id, core.RecordQuery{})
	if got := gres2.Data.Str(core.FieldFirstName); got != "Amina" {
		t.Errorf("stored record mutated: first name = %q, want %q", got, "Amina")
	}
}
