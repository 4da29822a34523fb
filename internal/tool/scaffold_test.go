package tool_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"forge-ai/backend/internal/tool"
)

func TestScaffoldGenerationTool_Validation(t *testing.T) {
	ctx := context.Background()
	scaffoldTool := tool.NewScaffoldGenerationTool()

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "lowercase model name",
			args: map[string]any{"name": "blogPost", "fields": "title:string"},
			want: "Error: Model name must be in PascalCase (e.g. BlogPost).",
		},
		{
			name: "snake_case model name",
			args: map[string]any{"name": "blog_post", "fields": "title:string"},
			want: "Error: Model name must be in PascalCase (e.g. BlogPost).",
		},
		{
			name: "missing fields",
			args: map[string]any{"name": "BlogPost", "fields": ""},
			want: "Error: at least one field definition is required",
		},
		{
			name: "malformed field",
			args: map[string]any{"name": "BlogPost", "fields": "title"},
			want: `Error: malformed field "title", expected name:type or name:type:nullable`,
		},
		{
			name: "unknown field type",
			args: map[string]any{"name": "BlogPost", "fields": "title:varchar"},
			want: `Error: unknown field type "varchar" in "title:varchar"`,
		},
		{
			name: "bad field modifier",
			args: map[string]any{"name": "BlogPost", "fields": "title:string:optional"},
			want: `Error: malformed field modifier in "title:string:optional", only 'nullable' is supported`,
		},
		{
			name: "malformed relationship",
			args: map[string]any{"name": "BlogPost", "fields": "title:string", "relationships": "User"},
			want: `Error: malformed relationship "User", expected kind:Model (e.g. belongsTo:User)`,
		},
		{
			name: "unknown relationship kind",
			args: map[string]any{"name": "BlogPost", "fields": "title:string", "relationships": "owns:User"},
			want: `Error: unknown relationship kind "owns", expected one of hasOne, hasMany, belongsTo, belongsToMany`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scaffoldTool.Execute(ctx, tt.args))
		})
	}
}

func TestScaffoldGenerationTool_Success(t *testing.T) {
	scaffoldTool := tool.NewScaffoldGenerationTool()

	result := scaffoldTool.Execute(context.Background(), map[string]any{
		"name":          "BlogPost",
		"fields":        "title:string,views:integer:nullable,body:text",
		"with":          "migration,factory",
		"relationships": "belongsTo:User,hasMany:Comment",
	})

	assert.False(t, strings.HasPrefix(result, "Error:"), "got %q", result)
	assert.Contains(t, result, "Generated scaffold for model BlogPost with 3 field(s) and 2 relationship(s)")
	assert.Contains(t, result, "class BlogPost extends Model")
	assert.Contains(t, result, "protected $fillable = ['title', 'views', 'body'];")
	assert.Contains(t, result, "return $this->belongsTo(User::class);")
	assert.Contains(t, result, "public function comments()")
	assert.Contains(t, result, "Schema::create('blog_posts'")
	assert.Contains(t, result, "$table->integer('views')->nullable();")
}
