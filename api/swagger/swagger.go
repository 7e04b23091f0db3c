package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Solver API",
        "description": "CSP-based university timetabling solver",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/solve": {
            "post": {
                "summary": "Normalise entities, build domains, and solve for a timetable",
                "responses": {
                    "200": {
                        "description": "Timetable found"
                    },
                    "422": {
                        "description": "InputInfeasible: a variable has an empty domain"
                    },
                    "500": {
                        "description": "InternalInconsistency"
                    }
                }
            }
        },
        "/export/csv": {
            "get": {
                "summary": "Export the most recently solved timetable as a flat CSV",
                "responses": {
                    "200": {
                        "description": "Export produced"
                    }
                }
            }
        },
        "/export/pdf": {
            "get": {
                "summary": "Export the most recently solved timetable's performance report as a PDF",
                "responses": {
                    "200": {
                        "description": "Export produced"
                    }
                }
            }
        },
        "/export/sqlite": {
            "post": {
                "summary": "Persist the most recently solved timetable into the SQLite export file",
                "responses": {
                    "200": {
                        "description": "Export produced"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics for solver and HTTP telemetry",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
