package postgresadapter

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func parseSchema(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	parsed, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema parse failed: %v", err)
	}
	return parsed
}

// The catalog projects tables owned by the eligibility service, so its
// column names must match the owning schema: both primary keys are "id"
// and candidates carry the election foreign key as "election_id".
func TestCatalogModelsMatchOwningSchema(t *testing.T) {
	elections := parseSchema(t, &electionRowModel{})
	if elections.Table != "elections" {
		t.Fatalf("unexpected elections table %q", elections.Table)
	}
	if got := elections.PrioritizedPrimaryField.DBName; got != "id" {
		t.Fatalf("elections primary key column = %q, want %q", got, "id")
	}

	candidates := parseSchema(t, &candidateRowModel{})
	if candidates.Table != "candidates" {
		t.Fatalf("unexpected candidates table %q", candidates.Table)
	}
	if got := candidates.PrioritizedPrimaryField.DBName; got != "id" {
		t.Fatalf("candidates primary key column = %q, want %q", got, "id")
	}
	election := candidates.LookUpField("ElectionID")
	if election == nil || election.DBName != "election_id" {
		t.Fatalf("candidates election filter column missing or misnamed")
	}
}
