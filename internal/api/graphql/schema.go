package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/service"
)

// authorized gates a mutation resolver on a valid bearer token.
func authorized(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if err := requireAllowed(p.Context); err != nil {
			return nil, wrapErr(err)
		}
		return fn(p)
	}
}

// NewSchema builds the GraphQL schema over the domain services. The Promo
// interface resolves to DepositPromo or SignUpPromo from the promotion's
// template, once, at the boundary.
func NewSchema(svcs *service.Registry) (graphql.Schema, error) {
	memberType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Member",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"username":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"realName":    &graphql.Field{Type: graphql.String},
			"email":       &graphql.Field{Type: graphql.String},
			"bankAccount": &graphql.Field{Type: graphql.String},
			"balance": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if m := memberSource(p); m != nil {
						return m.Balance.InexactFloat64(), nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	vendorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Vendor",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"type": &graphql.Field{
				Type: vendorTypeEnum,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if v := vendorSource(p); v != nil {
						return string(v.Type), nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	promoFields := func() graphql.Fields {
		return graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"template": &graphql.Field{
				Type: promoTemplateEnum,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if promo := promoSource(p.Source); promo != nil {
						return string(promo.Template), nil
					}
					return nil, nil
				},
			},
			"status": &graphql.Field{
				Type: promoStatusEnum,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if promo := promoSource(p.Source); promo != nil {
						return string(promo.Status), nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		}
	}

	var depositPromoType, signUpPromoType *graphql.Object

	promoInterface := graphql.NewInterface(graphql.InterfaceConfig{
		Name:   "Promo",
		Fields: promoFields(),
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			if promo := promoSource(p.Value); promo != nil && promo.Template == model.PromoTemplateSignUp {
				return signUpPromoType
			}
			return depositPromoType
		},
	})

	depositFields := promoFields()
	depositFields["minimumBalance"] = &graphql.Field{
		Type: graphql.Float,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if promo := promoSource(p.Source); promo != nil && promo.MinimumBalance != nil {
				return promo.MinimumBalance.InexactFloat64(), nil
			}
			return nil, nil
		},
	}
	depositPromoType = graphql.NewObject(graphql.ObjectConfig{
		Name:       "DepositPromo",
		Interfaces: []*graphql.Interface{promoInterface},
		Fields:     depositFields,
	})

	signUpFields := promoFields()
	signUpFields["requiredMemberFields"] = &graphql.Field{
		Type: graphql.NewList(memberFieldEnum),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if promo := promoSource(p.Source); promo != nil {
				return []string(promo.RequiredMemberFields), nil
			}
			return nil, nil
		},
	}
	signUpPromoType = graphql.NewObject(graphql.ObjectConfig{
		Name:       "SignUpPromo",
		Interfaces: []*graphql.Interface{promoInterface},
		Fields:     signUpFields,
	})

	enrollmentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PromoEnrollmentRequest",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"memberId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"promoId":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status": &graphql.Field{
				Type: enrollmentStatusEnum,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if req := enrollmentSource(p); req != nil {
						return string(req.Status), nil
					}
					return nil, nil
				},
			},
			"member": &graphql.Field{
				Type: memberType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := enrollmentSource(p)
					if req == nil {
						return nil, nil
					}
					member, err := svcs.Members.Get(p.Context, req.MemberID)
					if err != nil {
						// Orphan references are tolerated.
						if apperr.IsCode(err, apperr.CodeMemberNotFound) {
							return nil, nil
						}
						return nil, wrapErr(err)
					}
					return member, nil
				},
			},
			"promo": &graphql.Field{
				Type: promoInterface,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := enrollmentSource(p)
					if req == nil {
						return nil, nil
					}
					promo, err := svcs.Promotions.Get(p.Context, req.PromotionID)
					if err != nil {
						if apperr.IsCode(err, apperr.CodePromoNotFound) {
							return nil, nil
						}
						return nil, wrapErr(err)
					}
					return promo, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	memberConnection := connectionType("Member", memberType)
	vendorConnection := connectionType("Vendor", vendorType)
	promoConnection := connectionType("Promo", promoInterface)
	enrollmentConnection := connectionType("PromoEnrollmentRequest", enrollmentType)

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"members": &graphql.Field{
				Type: memberConnection,
				Args: connectionArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					conn, err := svcs.Members.List(p.Context, connArgs(p))
					if err != nil {
						return nil, wrapErr(err)
					}
					return conn, nil
				},
			},
			"member": &graphql.Field{
				Type: memberType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					member, err := svcs.Members.Get(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, wrapErr(err)
					}
					return member, nil
				},
			},
			"vendors": &graphql.Field{
				Type: vendorConnection,
				Args: connectionArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					conn, err := svcs.Vendors.List(p.Context, connArgs(p))
					if err != nil {
						return nil, wrapErr(err)
					}
					return conn, nil
				},
			},
			"vendor": &graphql.Field{
				Type: vendorType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					vendor, err := svcs.Vendors.Get(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, wrapErr(err)
					}
					return vendor, nil
				},
			},
			"promos": &graphql.Field{
				Type: promoConnection,
				Args: connectionArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					conn, err := svcs.Promotions.List(p.Context, connArgs(p))
					if err != nil {
						return nil, wrapErr(err)
					}
					return conn, nil
				},
			},
			"promo": &graphql.Field{
				Type: promoInterface,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					promo, err := svcs.Promotions.Get(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, wrapErr(err)
					}
					return promo, nil
				},
			},
			"promoEnrollmentRequests": &graphql.Field{
				Type: enrollmentConnection,
				Args: connectionArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					conn, err := svcs.Enrollments.List(p.Context, connArgs(p))
					if err != nil {
						return nil, wrapErr(err)
					}
					return conn, nil
				},
			},
			"promoEnrollmentRequest": &graphql.Field{
				Type: enrollmentType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req, err := svcs.Enrollments.Get(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, wrapErr(err)
					}
					return req, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutation",
		Fields: mutationFields(svcs, memberType, vendorType, promoInterface, enrollmentType),
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
		Types:    []graphql.Type{depositPromoType, signUpPromoType},
	})
}
