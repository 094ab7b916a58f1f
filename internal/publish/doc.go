// Package publish turns a build output tree into uploaded objects.
//
// [Walk] lists every regular file with its storage key and inferred content
// type. [Publish] uploads the list sequentially, overwriting existing objects.
// Objects from earlier deployments that are no longer in the tree are left in
// place, and a failed upload leaves already uploaded objects as they are.
package publish
