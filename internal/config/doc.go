// Package config loads dashboard.json (or dashboard.yaml) from the project
// root.
//
// # Configuration File Structure
//
//	{
//	  "name": "dashboard",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "readTimeout": "10s",
//	    "rateLimit": {"requestsPerSecond": 50, "burst": 100}
//	  },
//	  "static": {"dir": "public", "prefix": "/"},
//	  "dev": {"watch": ["public"], "debounce": "100ms", "hotReload": true},
//	  "export": {
//	    "output": "dist",
//	    "s3": {"bucket": "my-site", "prefix": "dashboard", "region": "us-east-1"}
//	  },
//	  "observability": {
//	    "metrics": {"enabled": true, "path": "/metrics"},
//	    "tracing": {"enabled": false}
//	  },
//	  "log": {"level": "info", "format": "text"}
//	}
//
// A missing file is not an error: Load returns the defaults. Environment
// variables PORT, HOST and DASHBOARD_ENV are applied with ApplyEnv.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
