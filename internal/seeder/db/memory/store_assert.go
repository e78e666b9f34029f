package memory

import "github.com/pedigreehq/seedstock/internal/seeder/db"

var _ db.Store = (*Store)(nil)
