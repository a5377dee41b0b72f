package db

// HistorySchema holds quote submissions made from this device.
const HistorySchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	remote_id TEXT NOT NULL,
	user_email TEXT NOT NULL,
	business_name TEXT NOT NULL,
	product_name TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	payload TEXT NOT NULL,
	backend_reply TEXT,
	submitted_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at DESC);
CREATE INDEX IF NOT EXISTS idx_submissions_product ON submissions(product_name);
`
