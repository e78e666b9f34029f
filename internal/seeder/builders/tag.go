package builders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
	"github.com/pedigreehq/seedstock/internal/seeder/db/models"
	"github.com/pedigreehq/seedstock/internal/seeder/envqual"
	"github.com/pedigreehq/seedstock/internal/seeder/fixtures"
	"github.com/pedigreehq/seedstock/internal/seeder/resolver"
)

// TagOutcomes tallies the tag itself plus its assignments.
type TagOutcomes struct {
	Created int
	Existed int
	Skipped int
}

// resolveTagTarget maps a fixture handle to the concrete target of a tag
// assignment. Party-backed modules (contact, organization) tag the party;
// the rest tag the entity directly.
func resolveTagTarget(ctx context.Context, bc *Context, module models.TagModule, handle string) (models.TagTarget, apperrors.Error) {
	switch module {
	case models.ModuleContact:
		id, err := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindContactParty, envqual.Email(handle, bc.Env))
		if err != nil {
			return models.TagTarget{}, err
		}
		return models.TagTarget{Kind: models.TargetParty, ID: id}, nil
	case models.ModuleOrganization:
		id, err := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindOrgParty, envqual.Email(handle, bc.Env))
		if err != nil {
			return models.TagTarget{}, err
		}
		return models.TagTarget{Kind: models.TargetParty, ID: id}, nil
	case models.ModuleAnimal:
		id, err := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindAnimal, envqual.Name(handle, bc.Env))
		if err != nil {
			return models.TagTarget{}, err
		}
		return models.TagTarget{Kind: models.TargetEntity, ID: id}, nil
	case models.ModuleBreedingPlan:
		id, err := bc.Resolver.Resolve(ctx, bc.TenantID, resolver.KindPlan, envqual.Name(handle, bc.Env))
		if err != nil {
			return models.TagTarget{}, err
		}
		return models.TagTarget{Kind: models.TargetEntity, ID: id}, nil
	default:
		return models.TagTarget{}, resolver.ErrUnresolved.Msg("no target resolution for module: " + string(module))
	}
}

// TagWithAssignments upserts a tag by (tenant, module, name) and then each
// assignment by (tag, target). An unresolvable target is logged and skipped;
// the remaining targets are still assigned.
func TagWithAssignments(ctx context.Context, bc *Context, def fixtures.TagDef) (TagOutcomes, apperrors.Error) {
	var out TagOutcomes
	if err := bc.requireTenant(); err != nil {
		return out, err
	}
	module := models.TagModule(def.Module)
	name := envqual.Name(def.Name, bc.Env)

	var tagID uuid.UUID
	existing, err := bc.Store.GetTag(ctx, bc.TenantID, module, name)
	switch {
	case err == nil:
		tagID = existing.TagID
		out.Existed++
	case errors.Is(err, dberror.ErrNotFound):
		tag := models.Tag{TenantID: bc.TenantID, Module: module, Name: name}
		if cerr := bc.Store.CreateTag(ctx, &tag); cerr != nil {
			return out, cerr
		}
		tagID = tag.TagID
		out.Created++
		log.Ctx(ctx).Info().Str("module", def.Module).Str("name", name).Msg("tag created")
	default:
		return out, err
	}

	for _, handle := range def.Targets {
		target, terr := resolveTagTarget(ctx, bc, module, handle)
		if terr != nil {
			log.Ctx(ctx).Warn().Err(terr).Str("tag", name).Str("target", handle).Msg("tag target not resolved, skipping assignment")
			out.Skipped++
			continue
		}
		_, aerr := bc.Store.GetTagAssignment(ctx, tagID, target)
		switch {
		case aerr == nil:
			out.Existed++
		case errors.Is(aerr, dberror.ErrNotFound):
			assignment := models.TagAssignment{TagID: tagID, Target: target}
			if cerr := bc.Store.CreateTagAssignment(ctx, &assignment); cerr != nil {
				return out, cerr
			}
			out.Created++
		default:
			return out, aerr
		}
	}
	return out, nil
}
