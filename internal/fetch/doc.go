// Package fetch retrieves raw calendar and schedule pages from the
// allow-listed BFV hosts.
//
// Only https URLs on the configured host set are ever fetched
// (webcal:// is accepted as an alias and rewritten). The upstream site
// varies behavior by User-Agent and Accept-Language, so requests carry
// realistic browser headers. Fetches are never retried: the source is
// scraped best-effort and silent retries would mask structural breakage.
package fetch
