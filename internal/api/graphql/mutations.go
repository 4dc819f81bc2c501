package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/service"
)

// mutationFields builds the Mutation object's fields. Every mutation except
// createMember requires a valid bearer token; createMember stays open so new
// members can register before they hold a token.
func mutationFields(svcs *service.Registry, memberType, vendorType graphql.Output, promoInterface graphql.Output, enrollmentType graphql.Output) graphql.Fields {
	return graphql.Fields{
		"createMember": &graphql.Field{
			Type: memberType,
			Args: graphql.FieldConfigArgument{
				"username":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"password":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"realName":    &graphql.ArgumentConfig{Type: graphql.String},
				"email":       &graphql.ArgumentConfig{Type: graphql.String},
				"bankAccount": &graphql.ArgumentConfig{Type: graphql.String},
				"balance":     &graphql.ArgumentConfig{Type: graphql.Float},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				in := service.CreateMemberInput{
					Username: stringArg(p, "username"),
					Password: stringArg(p, "password"),
				}
				if v := optStringArg(p, "realName"); v != nil {
					in.RealName = *v
				}
				if v := optStringArg(p, "email"); v != nil {
					in.Email = *v
				}
				if v := optStringArg(p, "bankAccount"); v != nil {
					in.BankAccount = *v
				}
				if v := optDecimalArg(p, "balance"); v != nil {
					in.Balance = *v
				}
				member, err := svcs.Members.Create(p.Context, in)
				if err != nil {
					return nil, wrapErr(err)
				}
				return member, nil
			},
		},
		"updateMember": &graphql.Field{
			Type: memberType,
			Args: graphql.FieldConfigArgument{
				"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"realName":    &graphql.ArgumentConfig{Type: graphql.String},
				"email":       &graphql.ArgumentConfig{Type: graphql.String},
				"bankAccount": &graphql.ArgumentConfig{Type: graphql.String},
				"balance":     &graphql.ArgumentConfig{Type: graphql.Float},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				in := service.UpdateMemberInput{
					RealName:    optStringArg(p, "realName"),
					Email:       optStringArg(p, "email"),
					BankAccount: optStringArg(p, "bankAccount"),
					Balance:     optDecimalArg(p, "balance"),
				}
				member, err := svcs.Members.Update(p.Context, stringArg(p, "id"), in)
				if err != nil {
					return nil, wrapErr(err)
				}
				return member, nil
			}),
		},
		"deleteMember": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				deleted, err := svcs.Members.Delete(p.Context, stringArg(p, "id"))
				if err != nil {
					return nil, wrapErr(err)
				}
				return deleted, nil
			}),
		},
		"createVendor": &graphql.Field{
			Type: vendorType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"type": &graphql.ArgumentConfig{Type: graphql.NewNonNull(vendorTypeEnum)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				vendor, err := svcs.Vendors.Create(p.Context, stringArg(p, "name"), model.VendorType(stringArg(p, "type")))
				if err != nil {
					return nil, wrapErr(err)
				}
				return vendor, nil
			}),
		},
		"updateVendor": &graphql.Field{
			Type: vendorType,
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"name": &graphql.ArgumentConfig{Type: graphql.String},
				"type": &graphql.ArgumentConfig{Type: vendorTypeEnum},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				vendor, err := svcs.Vendors.Update(p.Context, stringArg(p, "id"), stringArg(p, "name"), model.VendorType(stringArg(p, "type")))
				if err != nil {
					return nil, wrapErr(err)
				}
				return vendor, nil
			}),
		},
		"deleteVendor": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				deleted, err := svcs.Vendors.Delete(p.Context, stringArg(p, "id"))
				if err != nil {
					return nil, wrapErr(err)
				}
				return deleted, nil
			}),
		},
		"createPromo": &graphql.Field{
			Type: promoInterface,
			Args: graphql.FieldConfigArgument{
				"name":                 &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"template":             &graphql.ArgumentConfig{Type: graphql.NewNonNull(promoTemplateEnum)},
				"status":               &graphql.ArgumentConfig{Type: promoStatusEnum},
				"minimumBalance":       &graphql.ArgumentConfig{Type: graphql.Float},
				"requiredMemberFields": &graphql.ArgumentConfig{Type: graphql.NewList(memberFieldEnum)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				in := service.CreatePromotionInput{
					Name:                 stringArg(p, "name"),
					Template:             model.PromoTemplate(stringArg(p, "template")),
					Status:               model.PromoStatus(stringArg(p, "status")),
					MinimumBalance:       optDecimalArg(p, "minimumBalance"),
					RequiredMemberFields: memberFieldsArg(p, "requiredMemberFields"),
				}
				promo, err := svcs.Promotions.Create(p.Context, in)
				if err != nil {
					return nil, wrapErr(err)
				}
				return promo, nil
			}),
		},
		"updatePromo": &graphql.Field{
			Type: promoInterface,
			Args: graphql.FieldConfigArgument{
				"id":                   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"name":                 &graphql.ArgumentConfig{Type: graphql.String},
				"status":               &graphql.ArgumentConfig{Type: promoStatusEnum},
				"minimumBalance":       &graphql.ArgumentConfig{Type: graphql.Float},
				"requiredMemberFields": &graphql.ArgumentConfig{Type: graphql.NewList(memberFieldEnum)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				in := service.UpdatePromotionInput{
					Name:                 optStringArg(p, "name"),
					MinimumBalance:       optDecimalArg(p, "minimumBalance"),
					RequiredMemberFields: memberFieldsArg(p, "requiredMemberFields"),
				}
				if v := optStringArg(p, "status"); v != nil {
					status := model.PromoStatus(*v)
					in.Status = &status
				}
				promo, err := svcs.Promotions.Update(p.Context, stringArg(p, "id"), in)
				if err != nil {
					return nil, wrapErr(err)
				}
				return promo, nil
			}),
		},
		"deletePromo": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				deleted, err := svcs.Promotions.Delete(p.Context, stringArg(p, "id"))
				if err != nil {
					return nil, wrapErr(err)
				}
				return deleted, nil
			}),
		},
		"enrollToPromo": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"promoId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"memberId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				if _, err := svcs.Enrollments.Enroll(p.Context, stringArg(p, "promoId"), stringArg(p, "memberId")); err != nil {
					return nil, wrapErr(err)
				}
				return true, nil
			}),
		},
		"approvePromoEnrollmentRequest": &graphql.Field{
			Type: enrollmentType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				req, err := svcs.Enrollments.Approve(p.Context, stringArg(p, "id"))
				if err != nil {
					return nil, wrapErr(err)
				}
				return req, nil
			}),
		},
		"processPromoEnrollmentRequest": &graphql.Field{
			Type: enrollmentType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				req, err := svcs.Enrollments.Process(p.Context, stringArg(p, "id"))
				if err != nil {
					return nil, wrapErr(err)
				}
				return req, nil
			}),
		},
		"rejectPromoEnrollmentRequest": &graphql.Field{
			Type: enrollmentType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				req, err := svcs.Enrollments.Reject(p.Context, stringArg(p, "id"))
				if err != nil {
					return nil, wrapErr(err)
				}
				return req, nil
			}),
		},
		"deletePromoEnrollmentRequest": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: authorized(func(p graphql.ResolveParams) (interface{}, error) {
				deleted, err := svcs.Enrollments.Delete(p.Context, stringArg(p, "id"))
				if err != nil {
					return nil, wrapErr(err)
				}
				return deleted, nil
			}),
		},
	}
}
