package profile

import (
	"encoding/json"
	"testing"
)

func TestDecodeUnwrapsDataKey(t *testing.T) {
	t.Parallel()

	payload := json.RawMessage(`{"data": {"name": "Jordan Reyes", "experiences": []}}`)
	record, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode wrapped payload: %v", err)
	}
	if record.Name != "Jordan Reyes" {
		t.Fatalf("unexpected name: %q", record.Name)
	}
}

func TestDecodeRenamesLegacyFields(t *testing.T) {
	t.Parallel()

	payload := json.RawMessage(`{
		"linkedin_url": "https://example.com/in/jr",
		"experiences": [
			{"position_title": "Data Analyst", "institution_name": "Acme Corp"}
		]
	}`)
	record, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode legacy payload: %v", err)
	}
	if record.ProfileURL != "https://example.com/in/jr" {
		t.Fatalf("profile_url not mapped: %q", record.ProfileURL)
	}
	if len(record.Experiences) != 1 || record.Experiences[0].Title != "Data Analyst" {
		t.Fatalf("position_title not mapped: %+v", record.Experiences)
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
	}{
		{name: "empty", payload: ""},
		{name: "truncated", payload: `{"name": "x"`},
		{name: "trailing", payload: `{"name": "x"} {"name": "y"}`},
		{name: "wrong type", payload: `{"experiences": "not a list"}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode(json.RawMessage(tc.payload)); err == nil {
				t.Fatalf("expected decode error for %s payload", tc.name)
			}
		})
	}
}

func TestDecodeRepairsEncodingArtifacts(t *testing.T) {
	t.Parallel()

	payload := json.RawMessage(`{"name": "RenÃ©e", "experiences": []}`)
	record, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if record.Name != "Renée" {
		t.Fatalf("mojibake not repaired: %q", record.Name)
	}
}

func TestDecodeRepairsEncodingInAllSections(t *testing.T) {
	t.Parallel()

	payload := json.RawMessage(`{
		"experiences": [{"title": "IngÃ©nieur", "institution_name": "Acme", "location": "MontrÃ©al", "from_date": "2020-01", "to_date": "2021-01"}],
		"skills": [{"category": "Langues", "skills": ["FranÃ§ais"]}],
		"interests": ["CinÃ©ma"],
		"accomplishments": ["Prix dâ€™excellence"],
		"contacts": ["renÃ©e@example.com"]
	}`)
	record, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if record.Experiences[0].Location != "Montréal" {
		t.Fatalf("experience location not repaired: %q", record.Experiences[0].Location)
	}
	if record.Skills[0].Skills[0] != "Français" {
		t.Fatalf("skill entry not repaired: %q", record.Skills[0].Skills[0])
	}
	if record.Interests[0] != "Cinéma" {
		t.Fatalf("interest not repaired: %q", record.Interests[0])
	}
	if record.Accomplishments[0] != "Prix d’excellence" {
		t.Fatalf("accomplishment not repaired: %q", record.Accomplishments[0])
	}
	if record.Contacts[0] != "renée@example.com" {
		t.Fatalf("contact not repaired: %q", record.Contacts[0])
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	if !(&Record{}).IsEmpty() {
		t.Fatalf("zero record should be empty")
	}
	if (&Record{Name: "x"}).IsEmpty() {
		t.Fatalf("named record should not be empty")
	}
	var nilRecord *Record
	if !nilRecord.IsEmpty() {
		t.Fatalf("nil record should be empty")
	}
}
