package tenant

import (
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const column = "tenant_id"

// Plugin scopes every statement on a tenant-owned model to the tenant bound
// to the statement context. Reads, updates and deletes get a tenant_id
// predicate; creates get the tenant stamped on every row.
type Plugin struct{}

func NewPlugin() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return "tenant"
}

func (p *Plugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("tenant:stamp", p.stamp); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("tenant:query", p.filter); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("tenant:row", p.filter); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("tenant:update", p.filter); err != nil {
		return err
	}
	return cb.Delete().Before("gorm:delete").Register("tenant:delete", p.filter)
}

func (p *Plugin) filter(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}
	field := db.Statement.Schema.LookUpField(column)
	if field == nil {
		return
	}

	db.Statement.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: field.DBName},
			Value:  Resolve(db.Statement.Context),
		},
	}})
}

func (p *Plugin) stamp(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}
	field := db.Statement.Schema.LookUpField(column)
	if field == nil {
		return
	}

	id := Resolve(db.Statement.Context)
	ctx := db.Statement.Context
	rv := db.Statement.ReflectValue

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := reflect.Indirect(rv.Index(i))
			if err := field.Set(ctx, elem, id); err != nil {
				_ = db.AddError(err)
				return
			}
		}
	case reflect.Struct:
		if err := field.Set(ctx, rv, id); err != nil {
			_ = db.AddError(err)
		}
	}
}
