package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed profile.schema.json
var recordSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// mojibake artifacts seen in UTF-8 text decoded as Latin-1 upstream.
var encodingRepairs = [][2]string{
	{"â€¢", "•"}, {"Ã©", "é"}, {"Ã¨", "è"}, {"Ã ", "à"},
	{"Ã®", "î"}, {"Ã‰", "É"}, {"Â·", "·"}, {"Ã§", "ç"},
	{"â€™", "’"},
}

// Decode normalizes a raw JSON document into a canonical Record.
//
// Upstream producers disagree on shape: some nest the record under a "data"
// wrapper key, some use the legacy field names "position_title" and
// "linkedin_url". Decode unwraps and renames once, here, so downstream
// components never branch on shape. Malformed input is the one fatal error
// class of the whole pipeline and is reported to the caller.
func Decode(payload json.RawMessage) (*Record, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode profile JSON: %w", err)
	}

	unwrapped := unwrapDataKey(value)

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load profile schema: %w", err)
	}
	if err := schema.Validate(unwrapped); err != nil {
		return nil, fmt.Errorf("profile schema validation failed: %w", err)
	}

	renamed := renameLegacyFields(unwrapped)

	normalized, err := json.Marshal(renamed)
	if err != nil {
		return nil, fmt.Errorf("normalize profile JSON: %w", err)
	}

	var record Record
	if err := json.Unmarshal(normalized, &record); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}

	repairEncoding(&record)
	return &record, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("profile.schema.json", strings.NewReader(recordSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("profile.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}

// unwrapDataKey lifts a record nested under {"data": {...}} to the top level.
// A document already carrying profile sections is returned as-is.
func unwrapDataKey(value any) any {
	object, ok := value.(map[string]any)
	if !ok {
		return value
	}
	if _, hasSections := object["experiences"]; hasSections {
		return value
	}
	if inner, ok := object["data"].(map[string]any); ok {
		return inner
	}
	return value
}

// legacy producer names -> canonical names, per object level.
var legacyTopLevel = map[string]string{"linkedin_url": "profile_url"}
var legacyItemLevel = map[string]string{"position_title": "title", "linkedin_url": "url"}

func renameLegacyFields(value any) any {
	object, ok := value.(map[string]any)
	if !ok {
		return value
	}

	out := make(map[string]any, len(object))
	for key, v := range object {
		if canonical, found := legacyTopLevel[key]; found {
			if _, taken := object[canonical]; !taken {
				key = canonical
			}
		}
		out[key] = v
	}

	for _, section := range []string{"experiences", "educations"} {
		items, ok := out[section].([]any)
		if !ok {
			continue
		}
		renamedItems := make([]any, 0, len(items))
		for _, item := range items {
			renamedItems = append(renamedItems, renameItemFields(item))
		}
		out[section] = renamedItems
	}

	return out
}

func renameItemFields(value any) any {
	object, ok := value.(map[string]any)
	if !ok {
		return value
	}
	out := make(map[string]any, len(object))
	for key, v := range object {
		if canonical, found := legacyItemLevel[key]; found {
			if _, taken := object[canonical]; !taken {
				key = canonical
			}
		}
		out[key] = v
	}
	return out
}

func repairEncoding(record *Record) {
	record.Name = cleanEncoding(record.Name)
	record.Location = cleanEncoding(record.Location)
	record.About = cleanEncoding(record.About)

	for i := range record.Experiences {
		record.Experiences[i].Title = cleanEncoding(record.Experiences[i].Title)
		record.Experiences[i].Institution = cleanEncoding(record.Experiences[i].Institution)
		record.Experiences[i].Location = cleanEncoding(record.Experiences[i].Location)
		record.Experiences[i].Description = cleanEncoding(record.Experiences[i].Description)
	}
	for i := range record.Educations {
		record.Educations[i].Degree = cleanEncoding(record.Educations[i].Degree)
		record.Educations[i].Institution = cleanEncoding(record.Educations[i].Institution)
		record.Educations[i].Location = cleanEncoding(record.Educations[i].Location)
		record.Educations[i].Description = cleanEncoding(record.Educations[i].Description)
	}
	for i := range record.Projects {
		record.Projects[i].Name = cleanEncoding(record.Projects[i].Name)
		record.Projects[i].Role = cleanEncoding(record.Projects[i].Role)
		record.Projects[i].Description = cleanEncoding(record.Projects[i].Description)
	}
	cleanEncodingList(record.Interests)
	cleanEncodingList(record.Accomplishments)
	cleanEncodingList(record.Contacts)
	for i := range record.Skills {
		record.Skills[i].Category = cleanEncoding(record.Skills[i].Category)
		cleanEncodingList(record.Skills[i].Skills)
	}
}

func cleanEncodingList(items []string) {
	for i := range items {
		items[i] = cleanEncoding(items[i])
	}
}

func cleanEncoding(text string) string {
	if text == "" {
		return ""
	}
	for _, repair := range encodingRepairs {
		text = strings.ReplaceAll(text, repair[0], repair[1])
	}
	return text
}
