// Package config loads snipr settings.
//
//	            +-------------+
//	            |   Config    |
//	            +------+------+
//	                   |
//	     +-------------+-------------+
//	     |             |             |
//	+----+----+   +----+----+   +----+----+
//	|  YAML   |   |   HCL   |   |  JSON   |
//	+---------+   +---------+   +---------+
//
// The parser is picked by file extension. A missing file is not an error: Load
// returns Default(). Validate fills every unset field, so callers never see an
// empty path or backend.
//
// Example .snipr.yaml:
//
//	store:
//	  backend: sqlite
//	  sqlite_path: /var/lib/snipr/snipr.db
//	gist:
//	  public: false
//	  delete_on_remove: true
//	languages:
//	  "**/templates/*.html": handlebars
//
// The same in HCL:
//
//	store {
//	  backend = "sqlite"
//	}
//	gist {
//	  delete_on_remove = true
//	  token_env        = "SNIPR_TOKEN"
//	}
//	languages = {
//	  "**/templates/*.html" = "handlebars"
//	}
package config
