// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package persist writes generated documents to disk idempotently.
//
// A document is compared with what is already on disk after both pass
// through a versioned [Canonicalizer]; the file is only rewritten when they
// differ. Re-signing an unchanged document therefore leaves the tree, and the
// commit history built from it, untouched.
package persist
