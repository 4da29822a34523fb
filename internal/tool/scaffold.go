package tool

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"forge-ai/backend/internal/llm"
)

// ScaffoldToolName is the name the scaffold tool is advertised under. The
// name is part of the stream translator's dispatch contract.
const ScaffoldToolName = "generate_laravel_model"

var pascalCase = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
var snakeCase = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var columnTypes = map[string]string{
	"string":   "string",
	"text":     "text",
	"integer":  "integer",
	"bigint":   "bigInteger",
	"boolean":  "boolean",
	"date":     "date",
	"datetime": "dateTime",
	"decimal":  "decimal",
	"float":    "float",
	"json":     "json",
	"uuid":     "uuid",
	"foreign":  "foreignId",
}

var relationKinds = map[string]bool{
	"hasOne":        true,
	"hasMany":       true,
	"belongsTo":     true,
	"belongsToMany": true,
}

type scaffoldField struct {
	name     string
	kind     string
	nullable bool
}

type scaffoldRelation struct {
	kind   string
	target string
}

// ScaffoldGenerationTool parses a compact model description and produces a
// summary plus suggested Eloquent model and migration code. It does not touch
// persistence; applying the suggestion is left to the user's own project.
type ScaffoldGenerationTool struct{}

func NewScaffoldGenerationTool() *ScaffoldGenerationTool {
	return &ScaffoldGenerationTool{}
}

func (t *ScaffoldGenerationTool) Name() string { return ScaffoldToolName }

func (t *ScaffoldGenerationTool) Description() string {
	return "Generate a Laravel Eloquent model scaffold (model class, migration, optional factory and seeder) from a field list."
}

func (t *ScaffoldGenerationTool) Parameters() llm.Parameters {
	return llm.Parameters{
		Type: "object",
		Properties: map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Model name in PascalCase, e.g. BlogPost",
			},
			"fields": map[string]any{
				"type":        "string",
				"description": "Comma-separated field definitions: name:type or name:type:nullable, e.g. title:string,views:integer:nullable",
			},
			"with": map[string]any{
				"type":        "string",
				"description": "Comma-separated extras to generate: migration, factory, seeder",
			},
			"relationships": map[string]any{
				"type":        "string",
				"description": "Comma-separated relationships: kind:Model, e.g. belongsTo:User,hasMany:Comment",
			},
		},
		Required: []string{"name", "fields"},
	}
}

func (t *ScaffoldGenerationTool) Execute(_ context.Context, args map[string]any) string {
	name := stringArg(args, "name")
	if !pascalCase.MatchString(name) {
		return "Error: Model name must be in PascalCase (e.g. BlogPost)."
	}

	fields, err := parseFields(stringArg(args, "fields"))
	if err != nil {
		return "Error: " + err.Error()
	}

	relations, err := parseRelations(stringArg(args, "relationships"))
	if err != nil {
		return "Error: " + err.Error()
	}

	extras := parseExtras(stringArg(args, "with"))

	return renderScaffold(name, fields, relations, extras)
}

func parseFields(raw string) ([]scaffoldField, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("at least one field definition is required")
	}

	var fields []scaffoldField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments := strings.Split(part, ":")
		if len(segments) < 2 || len(segments) > 3 {
			return nil, fmt.Errorf("malformed field %q, expected name:type or name:type:nullable", part)
		}

		f := scaffoldField{name: strings.TrimSpace(segments[0]), kind: strings.ToLower(strings.TrimSpace(segments[1]))}
		if !snakeCase.MatchString(f.name) {
			return nil, fmt.Errorf("field name %q must be snake_case", f.name)
		}
		if _, ok := columnTypes[f.kind]; !ok {
			return nil, fmt.Errorf("unknown field type %q in %q", f.kind, part)
		}
		if len(segments) == 3 {
			if strings.ToLower(strings.TrimSpace(segments[2])) != "nullable" {
				return nil, fmt.Errorf("malformed field modifier in %q, only 'nullable' is supported", part)
			}
			f.nullable = true
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one field definition is required")
	}
	return fields, nil
}

func parseRelations(raw string) ([]scaffoldRelation, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var relations []scaffoldRelation
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments := strings.SplitN(part, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("malformed relationship %q, expected kind:Model (e.g. belongsTo:User)", part)
		}
		kind := strings.TrimSpace(segments[0])
		target := strings.TrimSpace(segments[1])
		if !relationKinds[kind] {
			return nil, fmt.Errorf("unknown relationship kind %q, expected one of hasOne, hasMany, belongsTo, belongsToMany", kind)
		}
		if !pascalCase.MatchString(target) {
			return nil, fmt.Errorf("relationship target %q must be in PascalCase", target)
		}
		relations = append(relations, scaffoldRelation{kind: kind, target: target})
	}
	return relations, nil
}

func parseExtras(raw string) []string {
	var extras []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "migration", "factory", "seeder":
			extras = append(extras, part)
		}
	}
	return extras
}

func renderScaffold(name string, fields []scaffoldField, relations []scaffoldRelation, extras []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generated scaffold for model %s with %d field(s)", name, len(fields))
	if len(relations) > 0 {
		fmt.Fprintf(&b, " and %d relationship(s)", len(relations))
	}
	if len(extras) > 0 {
		fmt.Fprintf(&b, " (including %s)", strings.Join(extras, ", "))
	}
	b.WriteString(".\n\nSuggested model:\n\n```php\n")
	b.WriteString(renderModel(name, fields, relations))
	b.WriteString("\n```")

	for _, extra := range extras {
		if extra == "migration" {
			b.WriteString("\n\nSuggested migration:\n\n```php\n")
			b.WriteString(renderMigration(name, fields))
			b.WriteString("\n```")
		}
	}
	return b.String()
}

func renderModel(name string, fields []scaffoldField, relations []scaffoldRelation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "class %s extends Model\n{\n", name)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = fmt.Sprintf("'%s'", f.name)
	}
	fmt.Fprintf(&b, "    protected $fillable = [%s];\n", strings.Join(names, ", "))

	for _, r := range relations {
		method := lowerFirst(r.target)
		if r.kind == "hasMany" || r.kind == "belongsToMany" {
			method = plural(method)
		}
		fmt.Fprintf(&b, "\n    public function %s()\n    {\n        return $this->%s(%s::class);\n    }\n", method, r.kind, r.target)
	}
	b.WriteString("}")
	return b.String()
}

func renderMigration(name string, fields []scaffoldField) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schema::create('%s', function (Blueprint $table) {\n", plural(toSnake(name)))
	b.WriteString("    $table->id();\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "    $table->%s('%s')", columnTypes[f.kind], f.name)
		if f.nullable {
			b.WriteString("->nullable()")
		}
		b.WriteString(";\n")
	}
	b.WriteString("    $table->timestamps();\n});")
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func plural(s string) string {
	switch {
	case strings.HasSuffix(s, "y"):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(s, "s"):
		return s + "es"
	default:
		return s + "s"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
