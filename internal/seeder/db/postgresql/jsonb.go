package postgresql

import (
	"github.com/jackc/pgtype"

	"github.com/pedigreehq/seedstock/internal/common/apperrors"
	"github.com/pedigreehq/seedstock/internal/seeder/db/dberror"
)

func toJSONB(v any) (pgtype.JSONB, apperrors.Error) {
	var j pgtype.JSONB
	b, err := json.Marshal(v)
	if err != nil {
		return j, dberror.ErrInvalidInput.Err(err)
	}
	if err := j.Set(b); err != nil {
		return j, dberror.ErrInvalidInput.Err(err)
	}
	return j, nil
}

func fromJSONB(j pgtype.JSONB, v any) apperrors.Error {
	if j.Status != pgtype.Present {
		return nil
	}
	if err := json.Unmarshal(j.Bytes, v); err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
