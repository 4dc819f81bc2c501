package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
)

var vendorTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "VendorType",
	Values: graphql.EnumValueConfigMap{
		"CAFE":       &graphql.EnumValueConfig{Value: "CAFE"},
		"RESTAURANT": &graphql.EnumValueConfig{Value: "RESTAURANT"},
	},
})

var promoTemplateEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "PromoTemplate",
	Values: graphql.EnumValueConfigMap{
		"DEPOSIT": &graphql.EnumValueConfig{Value: "DEPOSIT"},
		"SIGN_UP": &graphql.EnumValueConfig{Value: "SIGN_UP"},
	},
})

var promoStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "PromoStatus",
	Values: graphql.EnumValueConfigMap{
		"DRAFT":    &graphql.EnumValueConfig{Value: "DRAFT"},
		"ACTIVE":   &graphql.EnumValueConfig{Value: "ACTIVE"},
		"INACTIVE": &graphql.EnumValueConfig{Value: "INACTIVE"},
	},
})

var memberFieldEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "MemberField",
	Values: graphql.EnumValueConfigMap{
		"EMAIL":        &graphql.EnumValueConfig{Value: "EMAIL"},
		"REAL_NAME":    &graphql.EnumValueConfig{Value: "REAL_NAME"},
		"BANK_ACCOUNT": &graphql.EnumValueConfig{Value: "BANK_ACCOUNT"},
	},
})

var enrollmentStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "PromoEnrollmentRequestStatus",
	Values: graphql.EnumValueConfigMap{
		"PENDING":    &graphql.EnumValueConfig{Value: "PENDING"},
		"PROCESSING": &graphql.EnumValueConfig{Value: "PROCESSING"},
		"APPROVED":   &graphql.EnumValueConfig{Value: "APPROVED"},
		"REJECTED":   &graphql.EnumValueConfig{Value: "REJECTED"},
	},
})

var pageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"endCursor":   &graphql.Field{Type: graphql.String},
		"hasNextPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

// connectionType builds the edge and connection objects for a node type.
func connectionType(name string, node graphql.Output) *graphql.Object {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"node":   &graphql.Field{Type: node},
			"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"edges":      &graphql.Field{Type: graphql.NewList(edge)},
			"pageInfo":   &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
		},
	})
}

var connectionArgs = graphql.FieldConfigArgument{
	"first": &graphql.ArgumentConfig{Type: graphql.Int},
	"after": &graphql.ArgumentConfig{Type: graphql.String},
}

func connArgs(p graphql.ResolveParams) pagination.Args {
	var args pagination.Args
	if v, ok := p.Args["first"].(int); ok {
		args.First = &v
	}
	if v, ok := p.Args["after"].(string); ok {
		args.After = &v
	}
	return args
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func optStringArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

func optDecimalArg(p graphql.ResolveParams, name string) *decimal.Decimal {
	if v, ok := p.Args[name].(float64); ok {
		d := decimal.NewFromFloat(v)
		return &d
	}
	return nil
}

func memberFieldsArg(p graphql.ResolveParams, name string) []model.MemberField {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}
	fields := make([]model.MemberField, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			fields = append(fields, model.MemberField(s))
		}
	}
	return fields
}

func memberSource(p graphql.ResolveParams) *model.Member {
	switch m := p.Source.(type) {
	case *model.Member:
		return m
	case model.Member:
		return &m
	}
	return nil
}

func vendorSource(p graphql.ResolveParams) *model.Vendor {
	switch v := p.Source.(type) {
	case *model.Vendor:
		return v
	case model.Vendor:
		return &v
	}
	return nil
}

func promoSource(v interface{}) *model.Promotion {
	switch p := v.(type) {
	case *model.Promotion:
		return p
	case model.Promotion:
		return &p
	}
	return nil
}

func enrollmentSource(p graphql.ResolveParams) *model.EnrollmentRequest {
	switch r := p.Source.(type) {
	case *model.EnrollmentRequest:
		return r
	case model.EnrollmentRequest:
		return &r
	}
	return nil
}
