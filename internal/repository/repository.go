// Package repository owns the application data.
//
// Cards live in an in-memory ordered list guarded by a mutex; the
// repository is the single source of truth and hands out copies only.
package repository
