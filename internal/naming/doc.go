// Package naming provides the subtitle token pattern, episode selection
// parsing, and destination collision resolution.
//
// Types:
//   - TokenPattern: "<show> - <token>" matcher; Extract(name) → token.
//   - EpisodeSet: parsed "1-5,8" selection; Allows(token).
//   - CollisionResolver: per-run destination claims plus on-disk checks,
//     resolved by the configured policy (skip, overwrite, suffix).
//
// Functions:
//   - ParseEpisodes(spec) → EpisodeSet
//   - ReadyEpisodes(names, ext) → []int, FormatEpisodes([]int) → "01-03, 05"
package naming
