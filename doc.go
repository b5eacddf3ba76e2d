/*
Package kinetree assembles robot descriptions into kinematic trees and
renders them as URDF documents.

A description is a YAML (or JSON) document listing materials, links,
joints and transmissions, optionally followed by branch operations such
as mirroring a chain across an axis and re-attaching it under a new group
id. The Engine compiles descriptions and renders the result:

	engine := kinetree.New()
	doc, err := engine.Render(ctx, data, urdf.NewConfig())

Joints may attach sub-assemblies from a part library, see WithParts and
the loam adapter in pkg/adapters/loam.

The lower level packages are usable on their own: pkg/kinematic exposes
the builders and the tree operations, and pkg/urdf the emitter.
*/
package kinetree
