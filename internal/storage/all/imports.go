// Package all registers every built-in sink backend. Import it for side
// effects from the wiring layer:
//
//	import _ "segprep/internal/storage/all"
package all

import (
	_ "segprep/internal/storage/csv"
	_ "segprep/internal/storage/mssql"
	_ "segprep/internal/storage/mysql"
	_ "segprep/internal/storage/postgres"
	_ "segprep/internal/storage/sqlite"
)
