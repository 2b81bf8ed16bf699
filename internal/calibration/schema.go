// internal/calibration/schema.go
package calibration

// bundleSchema is the JSON Schema a calibration bundle file must satisfy.
// Structural validation happens once at load time; semantic checks (table
// spacing, monotonicity inputs) run afterwards in validateBundle.
const bundleSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["version", "globalIntercept", "gpaTable", "mcatTable", "experience", "publications", "demographics", "schools"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"globalIntercept": {"type": "number"},
		"gpaTable": {"$ref": "#/definitions/table"},
		"mcatTable": {"$ref": "#/definitions/table"},
		"hardThresholdPenalty": {"type": "number", "maximum": 0},
		"experience": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["tau", "alpha"],
				"properties": {
					"tau": {"type": "number", "exclusiveMinimum": 0},
					"alpha": {"type": "number", "minimum": 0},
					"threshold": {"type": "number", "minimum": 0},
					"policy": {"type": "string", "enum": ["none", "soft", "hard"]}
				}
			}
		},
		"publications": {
			"type": "object",
			"required": ["firstAuthorValue", "coAuthorValue", "otherValue", "diminishing"],
			"properties": {
				"firstAuthorValue": {"type": "number", "minimum": 0},
				"coAuthorValue": {"type": "number", "minimum": 0},
				"otherValue": {"type": "number", "minimum": 0},
				"diminishing": {"type": "number", "exclusiveMinimum": 0, "maximum": 1}
			}
		},
		"demographics": {
			"type": "object",
			"required": ["categories", "ses", "interactions"],
			"properties": {
				"categories": {"type": "object", "additionalProperties": {"type": "number"}},
				"urmCategories": {"type": "array", "items": {"type": "string"}},
				"ses": {"type": "object"},
				"interactions": {"type": "object"}
			}
		},
		"schools": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["info", "params"],
				"properties": {
					"info": {"type": "object", "required": ["id", "state"]},
					"params": {
						"type": "object",
						"required": ["interceptInterview", "interceptAccept", "slopeInterview", "slopeAccept"],
						"additionalProperties": {"type": "number"}
					}
				}
			}
		},
		"referenceCells": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["gpa", "mcat", "rate", "weight"],
				"additionalProperties": {"type": "number"}
			}
		}
	},
	"definitions": {
		"table": {
			"type": "object",
			"required": ["xMin", "xMax", "step", "values"],
			"properties": {
				"xMin": {"type": "number"},
				"xMax": {"type": "number"},
				"step": {"type": "number", "exclusiveMinimum": 0},
				"values": {"type": "array", "minItems": 2, "items": {"type": "number"}}
			}
		}
	}
}`
