// Package sitechat indexes the text of a website into a retrievable
// knowledge base and answers questions using only that content.
//
// The pipeline runs validate → crawl → chunk → embed → store at index time
// and embed → search → filter → synthesize at question time.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package sitechat
