package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/restgen/restgen/pkg/core/schema"
	"github.com/restgen/restgen/pkg/errors"
)

type fakeColumns map[string][]*schema.ColumnInfo

func (f fakeColumns) Columns(_ context.Context, table string) ([]*schema.ColumnInfo, error) {
	return f[table], nil
}

func testOptions(t *testing.T) Options {
	root := t.TempDir()
	return Options{
		Paths:   NewPaths(filepath.Join(root, "crud"), filepath.Join(root, "controllers"), filepath.Join(root, "definitions"), filepath.Join(root, "routes")),
		Globals: Params{"namespace": "App", "usersTable": "users", "passwordResetsTable": "password_resets"},
		Logger:  zaptest.NewLogger(t),
	}
}

func projectParams() Params {
	return Params{
		ParamModelsKebab: "user,user-role",
		ParamModelsCamel: "User,UserRole",
		ParamTables:      "users,user_roles",
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCompileModelsWritesOneFilePerModel(t *testing.T) {
	opts := testOptions(t)
	opts.Columns = fakeColumns{
		"users": {
			{Name: "id", Type: "bigint", IsPrimaryKey: true, AutoInc: true},
			{Name: "name", Type: "varchar(255)"},
			{Name: "email", Type: "varchar(255)"},
			{Name: "created_at", Type: "timestamp", Nullable: true},
		},
	}

	_, err := New(CRUDModels, opts).Compile(context.Background(), projectParams())
	require.NoError(t, err)

	user := readFile(t, filepath.Join(opts.Paths[TargetModels], "User.php"))
	assert.Contains(t, user, "namespace App\\Models;")
	assert.Contains(t, user, "class User extends Model")
	assert.Contains(t, user, "protected $table = 'users';")
	assert.Contains(t, user, "protected $fillable = ['name', 'email'];")

	role := readFile(t, filepath.Join(opts.Paths[TargetModels], "UserRole.php"))
	assert.Contains(t, role, "class UserRole extends Model")
	assert.Contains(t, role, "protected $table = 'user_roles';")
	assert.Contains(t, role, "protected $fillable = [];")
}

func TestCompileTransformersDerivesCamelNames(t *testing.T) {
	opts := testOptions(t)

	_, err := New(CRUDTransformers, opts).Compile(context.Background(), Params{ParamModelsKebab: "user-role"})
	require.NoError(t, err)

	got := readFile(t, filepath.Join(opts.Paths[TargetTransformers], "UserRoleTransformer.php"))
	assert.Contains(t, got, "class UserRoleTransformer extends TransformerAbstract")
	assert.Contains(t, got, "$userRole->toArray()")
}

func TestCompileRoutesConcatenatesIntoOneFile(t *testing.T) {
	opts := testOptions(t)

	out, err := New(CRUDRoutes, opts).Compile(context.Background(), projectParams())
	require.NoError(t, err)

	entries, err := os.ReadDir(opts.Paths[TargetRoutes])
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := readFile(t, filepath.Join(opts.Paths[TargetRoutes], "api.php"))
	assert.Equal(t, out, got)
	assert.True(t, strings.HasPrefix(got, "<?php\n\n"))
	assert.Equal(t, 1, strings.Count(got, "<?php"))
	assert.Less(t, strings.Index(got, "'users'"), strings.Index(got, "'user-roles'"))
}

func TestSwaggerDefinition(t *testing.T) {
	opts := testOptions(t)
	opts.Columns = fakeColumns{
		"users": {
			{Name: "id", Type: "integer", IsPrimaryKey: true},
			{Name: "email", Type: "varchar(255)"},
			{Name: "active", Type: "tinyint(1)", Default: "1"},
			{Name: "born_at", Type: "datetime", Nullable: true},
		},
	}

	_, err := New(SwaggerModels, opts).Compile(context.Background(), Params{
		ParamModelsKebab: "user",
		ParamModelsCamel: "User",
		ParamTables:      "users",
	})
	require.NoError(t, err)

	got := readFile(t, filepath.Join(opts.Paths[TargetDefinitions], "User.php"))
	assert.Contains(t, got, `definition="User"`)
	assert.Contains(t, got, `required={"email"}`)
	assert.Contains(t, got, `@SWG\Property(property="id", type="integer")`)
	assert.Contains(t, got, `@SWG\Property(property="active", type="boolean")`)
	assert.Contains(t, got, `@SWG\Property(property="born_at", type="string", format="date-time")`)
}

func TestAppendAuthRoutesTwiceLeavesOneSentinel(t *testing.T) {
	opts := testOptions(t)
	routes := New(AuthRoutesVariant, opts)

	_, err := routes.Compile(context.Background(), nil)
	require.NoError(t, err)

	_, err = routes.Compile(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDuplicateOutput))

	got := readFile(t, filepath.Join(opts.Paths[TargetAuthRoutes], "api.php"))
	assert.Equal(t, 1, strings.Count(got, AuthRoutesSentinel))
}

func TestAppendKeepsExistingRoutes(t *testing.T) {
	opts := testOptions(t)
	dir := opts.Paths[TargetAuthRoutes]
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.php"), []byte("<?php\n\nRoute::get('/', 'Home@index');"), 0644))

	_, err := New(AuthRoutesVariant, opts).Compile(context.Background(), nil)
	require.NoError(t, err)

	got := readFile(t, filepath.Join(dir, "api.php"))
	assert.True(t, strings.HasPrefix(got, "<?php\n\nRoute::get('/', 'Home@index');\n\n"))
	assert.Contains(t, got, AuthRoutesSentinel)
}

func TestAuthControllersUseGlobals(t *testing.T) {
	opts := testOptions(t)
	opts.Globals["namespace"] = "Acme"

	for _, c := range Chain(opts, AuthControllerVariants...) {
		_, err := c.Compile(context.Background(), nil)
		require.NoError(t, err, c.Name())
	}

	got := readFile(t, filepath.Join(opts.Paths[TargetAuthControllers], "AuthController.php"))
	assert.Contains(t, got, "namespace Acme\\Http\\Controllers\\Auth;")
	assert.NotContains(t, got, "{{namespace}}")
	assert.FileExists(t, filepath.Join(opts.Paths[TargetAuthControllers], "ForgotPasswordController.php"))
	assert.FileExists(t, filepath.Join(opts.Paths[TargetAuthControllers], "ResetPasswordController.php"))
}

func TestPreviewWritesNothing(t *testing.T) {
	opts := testOptions(t)

	variants := Preview(CRUDControllers, AuthRoutesVariant)
	assert.Equal(t, Overwrite, CRUDControllers.Mode)
	assert.Equal(t, Append, AuthRoutesVariant.Mode)

	compilers := Chain(opts, variants...)
	out, err := compilers[0].Compile(context.Background(), projectParams())
	require.NoError(t, err)
	assert.Contains(t, out, "class UserController")
	assert.Contains(t, out, "class UserRoleController")

	out, err = compilers[1].Compile(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Auth Routes")

	_, err = os.Stat(opts.Paths[TargetControllers])
	assert.True(t, os.IsNotExist(err))
	assert.NoDirExists(t, opts.Paths[TargetAuthRoutes])
}

func TestCompileRejectsMismatchedModels(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"no models", Params{}},
		{"notations differ", Params{ParamModelsKebab: "user,post", ParamModelsCamel: "User"}},
		{"tables differ", Params{ParamModelsKebab: "user,post", ParamTables: "users"}},
		{"empty model", Params{ParamModelsKebab: "user,"}},
		{"empty camel", Params{ParamModelsKebab: "user,post", ParamModelsCamel: "User, "}},
		{"empty table", Params{ParamModelsKebab: "user,post", ParamTables: "users,"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			_, err := New(CRUDModels, opts).Compile(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrInputValidation))
			assert.NoDirExists(t, opts.Paths[TargetModels])
		})
	}
}

func TestUnknownStub(t *testing.T) {
	v := CRUDModels
	v.Stub = "crud/missing.stub"

	_, err := New(v, testOptions(t)).Compile(context.Background(), projectParams())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrStubNotFound))
}

func TestSwaggerType(t *testing.T) {
	tests := []struct {
		sqlType string
		typ     string
		format  string
	}{
		{"bigint", "integer", ""},
		{"INT(11)", "integer", ""},
		{"tinyint(1)", "boolean", ""},
		{"boolean", "boolean", ""},
		{"decimal(8,2)", "number", ""},
		{"double precision", "number", ""},
		{"date", "string", "date"},
		{"timestamp without time zone", "string", "date-time"},
		{"jsonb", "object", ""},
		{"varchar(255)", "string", ""},
		{"text", "string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.sqlType, func(t *testing.T) {
			typ, format := SwaggerType(tt.sqlType)
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestVariantOrder(t *testing.T) {
	var names []string
	for _, v := range CRUDVariants() {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"crud-models", "crud-transformers", "crud-controllers", "swagger-models", "crud-routes"}, names)

	v, ok := VariantByName("swagger-models")
	assert.True(t, ok)
	assert.Equal(t, TargetDefinitions, v.Target)
}
