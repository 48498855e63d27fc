// Package config loads vimg configuration.
//
// Configuration lives in vimg.json at the project root. Every key can be
// overridden from the environment with the VIMG_ prefix (nested keys joined
// by underscores), and a .env file next to vimg.json is loaded first.
//
// # Configuration File Structure
//
//	{
//	  "image": {
//	    "rootMargin": 200,
//	    "fadeIn": "500ms",
//	    "fadeInSeen": "200ms",
//	    "errorMessage": "Image not found"
//	  },
//	  "placeholder": {
//	    "width": 16,
//	    "sigma": 1.5,
//	    "quality": 60,
//	    "source": "minio",
//	    "bucket": "assets",
//	    "prefix": "photos/",
//	    "minio": {"endpoint": "localhost:9000"}
//	  },
//	  "server": {"addr": ":8080", "metricsPath": "/metrics"},
//	  "log": {"level": "info", "format": "json"}
//	}
//
// Credentials are never written back by SaveTo; keep them in the
// environment or in .env:
//
//	VIMG_PLACEHOLDER_MINIO_ACCESSKEY=...
//	VIMG_PLACEHOLDER_MINIO_SECRETKEY=...
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
