/*
Package domain contains the value types of the kinetree robot model.

It defines the immutable building blocks that links and joints are made of,
together with the error taxonomy shared by the builders, the kinematic tree
and the URDF emitter. This package is kept pure and free of I/O, following
Hexagonal Architecture principles.

# Key Entities

  - Transform: A rigid pose (translation plus roll/pitch/yaw) with compose and mirror.
  - Geometry: Box, Cylinder, Sphere or Mesh shapes used by visuals and collisions.
  - Material: A flat color or texture, optionally named for deduplication.
  - Inertial: Mass and inertia tensor of a link.
  - Transmission: The ros_control description binding joints to actuators.
  - Group IDs: The [[id]] name fields used to rename mirrored branches.
*/
package domain
