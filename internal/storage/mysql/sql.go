package mysql

// `key` and `value` are reserved words; the table uses k/v.
const getBlobSQL = `SELECT v FROM kv_store WHERE k = ?`

const upsertBlobSQL = `
INSERT INTO kv_store (k, v)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  updated_at = CURRENT_TIMESTAMP
`
