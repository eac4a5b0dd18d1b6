package compiler

import "path/filepath"

// AuthRoutesSentinel marks an already generated auth routes block.
const AuthRoutesSentinel = "Auth Routes"

// CRUD variants, in the order a project is generated.
var (
	CRUDModels = Variant{
		Name:     "crud-models",
		Stub:     "crud/model.stub",
		Target:   TargetModels,
		FileName: "{{modelName}}.php",
		PerModel: true,
	}
	CRUDTransformers = Variant{
		Name:     "crud-transformers",
		Stub:     "crud/transformer.stub",
		Target:   TargetTransformers,
		FileName: "{{modelName}}Transformer.php",
		PerModel: true,
	}
	CRUDControllers = Variant{
		Name:     "crud-controllers",
		Stub:     "crud/controller.stub",
		Target:   TargetControllers,
		FileName: "{{modelName}}Controller.php",
		PerModel: true,
	}
	SwaggerModels = Variant{
		Name:     "swagger-models",
		Stub:     "crud/definition.stub",
		Target:   TargetDefinitions,
		FileName: "{{modelName}}.php",
		PerModel: true,
	}
	CRUDRoutes = Variant{
		Name:     "crud-routes",
		Stub:     "crud/routes.stub",
		Target:   TargetRoutes,
		FileName: "api.php",
		PerModel: true,
		Header:   "<?php\n\n",
	}
)

// Auth variants.
var (
	AuthControllerVariants = []Variant{
		authController("auth-controller", "AuthController.php"),
		authController("forgot-password-controller", "ForgotPasswordController.php"),
		authController("reset-password-controller", "ResetPasswordController.php"),
	}
	AuthDefinitionVariants = []Variant{
		authDefinition("login-definition", "Login.php"),
		authDefinition("register-definition", "Register.php"),
		authDefinition("reset-link-request-definition", "ResetLinkRequest.php"),
		authDefinition("reset-definition", "Reset.php"),
	}
	AuthRoutesVariant = Variant{
		Name:     "auth-routes",
		Stub:     "auth/routes.stub",
		Target:   TargetAuthRoutes,
		FileName: "api.php",
		Mode:     Append,
		Sentinel: AuthRoutesSentinel,
	}
)

func authController(name, fileName string) Variant {
	return Variant{
		Name:     name,
		Stub:     "auth/" + name + ".stub",
		Target:   TargetAuthControllers,
		FileName: fileName,
	}
}

func authDefinition(name, fileName string) Variant {
	return Variant{
		Name:     name,
		Stub:     "auth/" + name + ".stub",
		Target:   TargetAuthDefinitions,
		FileName: fileName,
	}
}

// CRUDVariants returns the project variants in generation order.
func CRUDVariants() []Variant {
	return []Variant{CRUDModels, CRUDTransformers, CRUDControllers, SwaggerModels, CRUDRoutes}
}

// VariantByName looks up a CRUD variant.
func VariantByName(name string) (Variant, bool) {
	for _, v := range CRUDVariants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// NewPaths lays out the destination directories. CRUD output is grouped
// under output; auth output goes straight into the application directories.
func NewPaths(output, controllers, definitions, routes string) Paths {
	return Paths{
		TargetModels:          filepath.Join(output, "Models"),
		TargetTransformers:    filepath.Join(output, "Transformers"),
		TargetControllers:     filepath.Join(output, "Controllers"),
		TargetDefinitions:     filepath.Join(output, "Definitions"),
		TargetRoutes:          filepath.Join(output, "routes"),
		TargetAuthControllers: filepath.Join(controllers, "Auth"),
		TargetAuthDefinitions: definitions,
		TargetAuthRoutes:      routes,
	}
}

// Preview returns copies of variants that compile without writing.
func Preview(variants ...Variant) []Variant {
	out := make([]Variant, len(variants))
	for i, v := range variants {
		v.Mode = Return
		out[i] = v
	}
	return out
}

// Chain creates one compiler per variant, sharing opts.
func Chain(opts Options, variants ...Variant) []*Compiler {
	compilers := make([]*Compiler, len(variants))
	for i, v := range variants {
		compilers[i] = New(v, opts)
	}
	return compilers
}
