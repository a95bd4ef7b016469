package seed

import (
	"sort"

	"github.com/noah-isme/audit-mgmt-api/internal/access"
)

type resourceDef struct {
	Resource string
	Label    string
	Actions  []string
}

var crudActions = []string{"get", "create", "update", "delete"}

// resources lists every permission resource with the actions it supports.
var resources = []resourceDef{
	{Resource: "company", Label: "empresas", Actions: crudActions},
	{Resource: "process", Label: "procesos", Actions: crudActions},
	{Resource: "control", Label: "controles", Actions: crudActions},
	{Resource: "risk", Label: "riesgos", Actions: crudActions},
	{Resource: "event", Label: "eventos", Actions: crudActions},
	{Resource: "audit", Label: "programas de auditoría", Actions: crudActions},
	{Resource: "audit_test", Label: "pruebas de auditoría", Actions: crudActions},
	{Resource: "finding", Label: "hallazgos", Actions: crudActions},
	{Resource: "plan", Label: "planes de acción", Actions: crudActions},
	{Resource: "task", Label: "tareas", Actions: crudActions},
	{Resource: "user", Label: "usuarios", Actions: crudActions},
	{Resource: "role", Label: "roles", Actions: crudActions},
	{Resource: "permission", Label: "permisos", Actions: []string{"get", "update"}},
	{Resource: "document", Label: "documentos", Actions: []string{"get", "create", "delete"}},
	{Resource: "audit_log", Label: "bitácora", Actions: []string{"get"}},
	{Resource: "dashboard", Label: "tablero", Actions: []string{"get"}},
	{Resource: "report", Label: "reportes", Actions: []string{"get", "create"}},
}

var actionLabels = map[string]string{
	"get":    "Consultar",
	"create": "Crear",
	"update": "Modificar",
	"delete": "Eliminar",
}

// auditorWrites are the resources the Auditor role may modify.
var auditorWrites = map[string]bool{
	"audit":      true,
	"audit_test": true,
	"finding":    true,
	"document":   true,
	"report":     true,
}

// PermissionDef is one row of the permission catalog.
type PermissionDef struct {
	Key      string
	Name     string
	Resource string
}

// Permissions returns the full catalog in declaration order.
func Permissions() []PermissionDef {
	var defs []PermissionDef
	for _, r := range resources {
		for _, action := range r.Actions {
			defs = append(defs, PermissionDef{
				Key:      access.Key(action, r.Resource),
				Name:     actionLabels[action] + " " + r.Label,
				Resource: r.Resource,
			})
		}
	}
	return defs
}

// RoleDef is a seeded role and the permission keys it is granted.
type RoleDef struct {
	Name        string
	Slug        string
	Description string
	Keys        []string
}

// Roles returns the seeded roles. Keys are sorted.
func Roles() []RoleDef {
	var all, auditor, readOnly []string
	for _, r := range resources {
		for _, action := range r.Actions {
			key := access.Key(action, r.Resource)
			all = append(all, key)
			if action == "get" {
				readOnly = append(readOnly, key)
				auditor = append(auditor, key)
			} else if auditorWrites[r.Resource] {
				auditor = append(auditor, key)
			}
		}
	}
	sort.Strings(all)
	sort.Strings(auditor)
	sort.Strings(readOnly)
	return []RoleDef{
		{Name: "Administrador", Slug: "administrador", Description: "Acceso total", Keys: all},
		{Name: "Auditor", Slug: "auditor", Description: "Ejecuta programas, pruebas y hallazgos", Keys: auditor},
		{Name: "Consulta", Slug: "consulta", Description: "Solo lectura", Keys: readOnly},
	}
}
