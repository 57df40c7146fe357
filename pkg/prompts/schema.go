// Package prompts holds the static prompt text sent to the SQL-generating
// model.
package prompts

// DatabaseSchema documents the clinical reporting database for the model.
// It is a plain description, not validated against the live database; keep
// it in sync with the migrations of the reporting warehouse by hand.
const DatabaseSchema = `Database Schema:

LOOKUP TABLES:
- genders (gender_id SERIAL PRIMARY KEY, gender_desc TEXT)
- races (race_id SERIAL PRIMARY KEY, race_desc TEXT)
- marital_statuses (marital_status_id SERIAL PRIMARY KEY, marital_status_desc TEXT)
- languages (language_id SERIAL PRIMARY KEY, language_desc TEXT)
- lab_units (unit_id SERIAL PRIMARY KEY, unit_string TEXT)
- lab_tests (lab_test_id SERIAL PRIMARY KEY, lab_name TEXT, unit_id INTEGER)
- diagnosis_codes (diagnosis_code TEXT PRIMARY KEY, diagnosis_description TEXT)

CORE TABLES:
- patients (
    patient_id TEXT PRIMARY KEY,
    patient_gender INTEGER (FK to genders),
    patient_dob TIMESTAMP,
    patient_race INTEGER (FK to races),
    patient_marital_status INTEGER (FK to marital_statuses),
    patient_language INTEGER (FK to languages),
    patient_population_pct_below_poverty REAL
)
- admissions (
    patient_id TEXT,
    admission_id INTEGER,
    admission_start TIMESTAMP,
    admission_end TIMESTAMP,
    PRIMARY KEY (patient_id, admission_id)
)
- admission_primary_diagnoses (
    patient_id TEXT,
    admission_id INTEGER,
    diagnosis_code TEXT (FK to diagnosis_codes),
    PRIMARY KEY (patient_id, admission_id)
)
- admission_lab_results (
    patient_id TEXT,
    admission_id INTEGER,
    lab_test_id INTEGER (FK to lab_tests),
    lab_value REAL,
    lab_datetime TIMESTAMP
)

IMPORTANT NOTES:
- Use JOINs to get descriptive values from lookup tables
- patient_dob, admission_start, admission_end, and lab_datetime are TIMESTAMPs
- To calculate age: EXTRACT(YEAR FROM AGE(patient_dob))
- To calculate length of stay: EXTRACT(EPOCH FROM (admission_end - admission_start)) / 86400 (gives days)
- Always use proper JOINs for foreign key relationships`

// SystemPrompt is the fixed system message for SQL generation requests.
func SystemPrompt() string {
	return "You are a PostgreSQL expert. Here is the database schema:\n" + DatabaseSchema
}
