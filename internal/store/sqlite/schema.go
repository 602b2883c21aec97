package sqlite

// initialSchema holds one row per settings key; values are JSON documents.
const initialSchema = `
CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`
