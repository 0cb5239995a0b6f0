package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    indicator            INTEGER NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    skipped_rows         INTEGER NOT NULL DEFAULT 0,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS series_points (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    pos                  INTEGER NOT NULL,
    day                  TEXT NOT NULL,
    value                REAL NOT NULL,
    PRIMARY KEY (file_path, pos)
);

CREATE TABLE IF NOT EXISTS material_rows (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    pos                  INTEGER NOT NULL,
    material             TEXT NOT NULL,
    total                REAL NOT NULL,
    quantity             INTEGER NOT NULL,
    purchase             TEXT,
    PRIMARY KEY (file_path, pos)
);

CREATE TABLE IF NOT EXISTS service_rows (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    pos                  INTEGER NOT NULL,
    label                TEXT NOT NULL,
    price                REAL NOT NULL,
    PRIMARY KEY (file_path, pos)
);

CREATE INDEX IF NOT EXISTS idx_tracker_indicator ON file_tracker(indicator);
`
